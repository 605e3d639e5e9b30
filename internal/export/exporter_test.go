package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/smallbiznis/plantdesk/internal/config"
	"github.com/smallbiznis/plantdesk/internal/providers/pdf"
	"github.com/smallbiznis/plantdesk/internal/providers/spreadsheet"
	"github.com/smallbiznis/plantdesk/pkg/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestExporter(t *testing.T, cfg config.OperationsConfig) *Exporter {
	t.Helper()
	return New(Params{
		Log:         zap.NewNop(),
		Spreadsheet: spreadsheet.New(),
		PDF:         pdf.New(),
		OpsConf:     config.NewStaticOperationsConfigHolder(cfg),
	})
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":      FormatJSON,
		"JSON":  FormatJSON,
		"xlsx":  FormatXLSX,
		" pdf ": FormatPDF,
		"txt":   FormatText,
		"text":  FormatText,
	}
	for raw, want := range cases {
		got, err := ParseFormat(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExportEmptyTableInEveryFileFormat(t *testing.T) {
	exp := newTestExporter(t, config.DefaultOperationsConfig())
	table := tabular.Table{Title: "Bakiye Raporu", Columns: []string{"Cari", "Borc", "Alacak", "Bakiye"}}

	xlsx, err := exp.Export(context.Background(), "balances", FormatXLSX, table)
	require.NoError(t, err)
	assert.Equal(t, spreadsheet.ContentType, xlsx.ContentType)
	assert.True(t, strings.HasPrefix(xlsx.Name, "bakiye-raporu_"))
	assert.True(t, strings.HasSuffix(xlsx.Name, ".xlsx"))
	f, err := excelize.OpenReader(bytes.NewReader(xlsx.Body))
	require.NoError(t, err)
	_ = f.Close()

	doc, err := exp.Export(context.Background(), "balances", FormatPDF, table)
	require.NoError(t, err)
	assert.Equal(t, pdf.ContentType, doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF")))

	txt, err := exp.Export(context.Background(), "balances", FormatText, table)
	require.NoError(t, err)
	assert.Equal(t, tabular.ContentTypeText, txt.ContentType)
	assert.Contains(t, string(txt.Body), "Cari | Borc | Alacak | Bakiye")
}

func TestExportUsesConfiguredLayout(t *testing.T) {
	cfg := config.DefaultOperationsConfig()
	cfg.Export.Delimiter = ";"
	cfg.Export.SheetName = "Cari"
	exp := newTestExporter(t, cfg)
	table := tabular.Table{
		Title:   "Cari Listesi",
		Columns: []string{"No", "Cari"},
		Rows:    [][]any{{"1", "Acme"}},
	}

	txt, err := exp.Export(context.Background(), "customers", FormatText, table)
	require.NoError(t, err)
	assert.Contains(t, string(txt.Body), "1;Acme")

	xlsx, err := exp.Export(context.Background(), "customers", FormatXLSX, table)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(xlsx.Body))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Cari"}, f.GetSheetList())
}

func TestExportRejectsJSON(t *testing.T) {
	exp := newTestExporter(t, config.DefaultOperationsConfig())
	_, err := exp.Export(context.Background(), "orders", FormatJSON, tabular.Table{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
