package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readTable 把 CSV 或 XLSX 表格读成按表头取值的行
// 首行视为表头；按扩展名分发，运营侧两种格式都在用
func readTable(path string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSXTable(path)
	default:
		return readCSVTable(path)
	}
}

func readCSVTable(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}

	return tableFromRows(records)
}

func readXLSXTable(path string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no sheet found in %s", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	return tableFromRows(rows)
}

func tableFromRows(rows [][]string) ([]map[string]string, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("feed table has no header row")
	}

	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, col := range header {
			// XLSX 的行尾空单元格会被截断，按空字符串补齐
			if i < len(row) {
				record[strings.TrimSpace(col)] = strings.TrimSpace(row[i])
			} else {
				record[strings.TrimSpace(col)] = ""
			}
		}
		out = append(out, record)
	}

	return out, nil
}

// requireField 取必填字段，缺失即加载期错误（不留到对账期）
func requireField(record map[string]string, field, path string, line int) (string, error) {
	value, ok := record[field]
	if !ok || value == "" {
		return "", fmt.Errorf("missing required field %q in %s (record %d)", field, path, line)
	}
	return value, nil
}
