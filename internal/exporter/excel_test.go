package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	e := NewWorkbookExporter(nil)

	require.NoError(t, e.Export(sampleResult(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Global", "Local", "Clusters", "Shocks"}, f.GetSheetList())

	commodity, err := f.GetCellValue("Global", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Wheat Flour", commodity)

	moran, err := f.GetCellValue("Global", "B2")
	require.NoError(t, err)
	assert.Equal(t, "0.42", moran)

	// Local rows come out in region order.
	firstRegion, err := f.GetCellValue("Local", "A2")
	require.NoError(t, err)
	assert.Equal(t, "aden", firstRegion)

	hub, err := f.GetCellValue("Clusters", "A2")
	require.NoError(t, err)
	assert.Equal(t, "aden", hub)

	shockMonth, err := f.GetCellValue("Shocks", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2020-02", shockMonth)
}
