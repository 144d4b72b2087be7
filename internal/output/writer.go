// Package output 把查询结果按 json/table/csv 写出。
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/iudx/rs-client/internal/constants/enums"
)

// Write 输出 values。values 中的 object 会按字段展开成列，其他值放在 value 列。
func Write(w io.Writer, format enums.OutputFormat, values []any) error {
	switch format {
	case enums.OutputFormatTable:
		headers, rows := tabulate(values)
		table := tablewriter.NewWriter(w)
		table.SetHeader(headers)
		table.SetAutoFormatHeaders(false)
		table.AppendBulk(rows)
		table.Render()
		return nil
	case enums.OutputFormatCSV:
		headers, rows := tabulate(values)
		cw := csv.NewWriter(w)
		if err := cw.Write(headers); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}
}

// tabulate 取所有 object 字段的并集（排序后）作为表头。
func tabulate(values []any) ([]string, [][]string) {
	keySet := map[string]struct{}{}
	hasScalar := false
	for _, v := range values {
		if m, ok := v.(map[string]any); ok {
			for k := range m {
				keySet[k] = struct{}{}
			}
		} else {
			hasScalar = true
		}
	}

	headers := make([]string, 0, len(keySet)+1)
	for k := range keySet {
		headers = append(headers, k)
	}
	sort.Strings(headers)
	if hasScalar {
		headers = append(headers, "value")
	}

	rows := make([][]string, 0, len(values))
	for _, v := range values {
		row := make([]string, len(headers))
		if m, ok := v.(map[string]any); ok {
			for i, h := range headers {
				if cell, exists := m[h]; exists {
					row[i] = cellString(cell)
				}
			}
		} else {
			row[len(headers)-1] = cellString(v)
		}
		rows = append(rows, row)
	}
	return headers, rows
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
