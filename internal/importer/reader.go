package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsx payloads are zip archives.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// ReadTable parses a raw tabular payload into headers and rows. XLSX is
// detected by filename extension or zip magic; everything else is read as
// CSV. Row numbers are 1-based including the header row.
func ReadTable(payload []byte, filename string) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") || bytes.HasPrefix(payload, zipMagic) {
		return readXLSX(payload)
	}
	return readCSV(payload)
}

func readCSV(payload []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(payload))
	reader.FieldsPerRecord = -1 // ragged rows are fine, missing cells read as empty
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return buildTable(records)
}

func readXLSX(payload []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return buildTable(records)
}

func buildTable(records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("input must have a header row and at least one data row")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{Headers: headers}
	for i, record := range records[1:] {
		row := Row{
			Number: i + 2, // header is row 1
			Cells:  make(map[string]string, len(headers)),
		}
		empty := true
		for j, header := range headers {
			if header == "" {
				continue
			}
			var value string
			if j < len(record) {
				value = record[j]
			}
			row.Cells[header] = value
			if trimCell(value) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("input has no non-empty data rows")
	}
	return table, nil
}
