package rssdk

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// writeClientCert 生成自签名的客户端证书，返回证书、cert/key 文件路径。
func writeClientCert(t *testing.T) (*x509.Certificate, string, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "rs-client-test"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	dir := t.TempDir()
	certPath := filepath.Join(dir, "client.pem")
	keyPath := filepath.Join(dir, "client.key.pem")
	require.NoError(t, os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600))
	return cert, certPath, keyPath
}

func TestNew_Validation(t *testing.T) {
	_, err := New("   ")
	require.True(t, errors.Is(err, ErrEmptyBaseURL))

	_, err = New("https://rs.example.org", WithCertificate("/tmp/cert.pem", ""))
	require.True(t, errors.Is(err, ErrIncompleteCertPair))

	_, err = New("https://rs.example.org", WithCertificate("", "/tmp/key.pem"))
	require.True(t, errors.Is(err, ErrIncompleteCertPair))

	_, err = New("https://rs.example.org", WithCertificate(filepath.Join(t.TempDir(), "nope.pem"), filepath.Join(t.TempDir(), "nope.key")))
	require.Error(t, err)
	require.Contains(t, err.Error(), "load tls client cert")

	c, err := New("https://rs.example.org", WithCertificate("", ""))
	require.NoError(t, err)
	require.Equal(t, "https://rs.example.org", c.BaseURL())
}

func TestSearch_MutualTLS(t *testing.T) {
	clientCert, certPath, keyPath := writeClientCert(t)

	pool := x509.NewCertPool()
	pool.AddCert(clientCert)

	var gotCN string
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.TLS.PeerCertificates) > 0 {
			gotCN = r.TLS.PeerCertificates[0].Subject.CommonName
		}
		_, _ = io.WriteString(w, `[{"status": "up"}]`)
	}))
	srv.TLS = &tls.Config{
		ClientAuth: tls.RequireAndVerifyClientCert,
		ClientCAs:  pool,
	}
	srv.StartTLS()
	t.Cleanup(srv.Close)

	rc := resty.New().SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	c := newTestClient(t, srv.URL, WithRestyClient(rc), WithCertificate(certPath, keyPath))

	ok, err := c.GetStatus(context.Background(), "id-1", "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "rs-client-test", gotCN)

	// 不带证书时握手失败，错误原样返回而不是状态码错误
	plain := newTestClient(t, srv.URL, WithRestyClient(resty.New().SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}))) //nolint:gosec
	_, err = plain.GetStatus(context.Background(), "id-1", "")
	require.Error(t, err)
	var se *StatusError
	require.False(t, errors.As(err, &se))
}

func TestWithHeaderAndLogger(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Trace")
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	c := newTestClient(t, srv.URL, WithHeader("X-Trace", "abc"), WithLogger(logger))
	_, err := c.GetLatestData(context.Background(), "id-1", "")
	require.NoError(t, err)

	require.Equal(t, "abc", gotHeader)
	require.Contains(t, buf.String(), "resource-server search request")
	require.Contains(t, buf.String(), "request_id=")
	require.Contains(t, buf.String(), "status=200")
}

func TestWithRestyClient_SharedClientUntouched(t *testing.T) {
	var (
		mu      sync.Mutex
		headers []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Get("X-Trace"))
		mu.Unlock()
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	shared := resty.New()
	traced := newTestClient(t, srv.URL, WithRestyClient(shared), WithHeader("X-Trace", "a"), WithTimeout(time.Second))
	plain := newTestClient(t, srv.URL, WithRestyClient(shared))

	_, err := traced.GetLatestData(context.Background(), "id-1", "")
	require.NoError(t, err)
	_, err = plain.GetLatestData(context.Background(), "id-1", "")
	require.NoError(t, err)

	mu.Lock()
	require.Equal(t, []string{"a", ""}, headers)
	mu.Unlock()

	// 共享的 resty client 上不应出现超时或 header
	require.Zero(t, shared.GetClient().Timeout)
	require.Empty(t, shared.Header.Get("X-Trace"))
}
