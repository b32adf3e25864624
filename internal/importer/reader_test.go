package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadTable_CSV(t *testing.T) {
	payload := []byte("SKU,Name,Voltage\nDRL-1000,Cordless Drill,220\nSAW-2000,Circular Saw,110\n")

	table, err := ReadTable(payload, "catalog.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"SKU", "Name", "Voltage"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Rows[0].Number)
	assert.Equal(t, "DRL-1000", table.Rows[0].Get("SKU"))
	assert.Equal(t, 3, table.Rows[1].Number)
	assert.Equal(t, "110", table.Rows[1].Get("Voltage"))
}

func TestReadTable_CSVRaggedRows(t *testing.T) {
	payload := []byte("SKU,Name,Voltage\nDRL-1000,Cordless Drill\n")

	table, err := ReadTable(payload, "catalog.csv")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0].Get("Voltage"))
}

func TestReadTable_BlankRowsSkippedButNumbersPreserved(t *testing.T) {
	payload := []byte("SKU,Name\nDRL-1000,Drill\n,\nSAW-2000,Saw\n")

	table, err := ReadTable(payload, "catalog.csv")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Rows[0].Number)
	assert.Equal(t, 4, table.Rows[1].Number)
}

func TestReadTable_HeaderOnlyFails(t *testing.T) {
	_, err := ReadTable([]byte("SKU,Name\n"), "catalog.csv")
	assert.Error(t, err)
}

func TestReadTable_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"SKU", "Name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"DRL-1000", "Cordless Drill"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := ReadTable(buf.Bytes(), "catalog.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"SKU", "Name"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Cordless Drill", table.Rows[0].Get("Name"))
}

func TestReadTable_XLSXDetectedByMagicBytes(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"SKU", "Name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"DRL-1000", "Drill"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	// Filename gives no hint; the zip magic decides.
	table, err := ReadTable(buf.Bytes(), "upload.bin")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
}
