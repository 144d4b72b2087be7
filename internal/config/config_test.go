package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iudx/rs-client/internal/constants/enums"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoad_Defaults(t *testing.T) {
	v := NewViper()
	v.Set(KeyURL, " https://rs.example.org ")

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "https://rs.example.org", cfg.URL)
	require.Equal(t, enums.OutputFormatJSON, cfg.Output)
	require.Equal(t, 1, cfg.Concurrency)
	require.Zero(t, cfg.Timeout)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]any
	}{
		{name: "missing url", set: map[string]any{}},
		{name: "cert without key", set: map[string]any{KeyURL: "https://rs", KeyCert: "/tmp/c.pem"}},
		{name: "key without cert", set: map[string]any{KeyURL: "https://rs", KeyKey: "/tmp/k.pem"}},
		{name: "bad output", set: map[string]any{KeyURL: "https://rs", KeyOutput: "xml"}},
		{name: "negative timeout", set: map[string]any{KeyURL: "https://rs", KeyTimeout: "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViper()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := Load(v)
			require.Error(t, err)
		})
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("IUDX_RS_URL", "https://env.example.org")
	t.Setenv("IUDX_RS_TOKEN", "env-token")
	t.Setenv("IUDX_RS_LOG_FILE", "/tmp/rs.log")
	t.Setenv("IUDX_RS_TIMEOUT", "5s")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	require.Equal(t, "https://env.example.org", cfg.URL)
	require.Equal(t, "env-token", cfg.Token)
	require.Equal(t, "/tmp/rs.log", cfg.LogFile)
	require.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rs-client.yaml")
	content := `
url: https://file.example.org
output: table
concurrency: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := NewViper()
	require.NoError(t, ReadConfigFile(v, path, quietLogger()))

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "https://file.example.org", cfg.URL)
	require.Equal(t, enums.OutputFormatTable, cfg.Output)
	require.Equal(t, 4, cfg.Concurrency)
}

func TestReadConfigFile_Missing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, ReadConfigFile(NewViper(), "", quietLogger()))
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("IUDX_RS_DOTENV_PROBE=from-dotenv\n"), 0o644))
	t.Setenv("IUDX_RS_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("IUDX_RS_DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	require.Equal(t, "from-dotenv", os.Getenv("IUDX_RS_DOTENV_PROBE"))
}

func TestConfig_NewClient(t *testing.T) {
	cfg := &Config{URL: "https://rs.example.org/resource-server/v2", Timeout: time.Second}
	c, err := cfg.NewClient(quietLogger())
	require.NoError(t, err)
	require.Equal(t, "https://rs.example.org:443/resource-server/v2", c.URLFor())
}
