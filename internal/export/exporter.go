package export

import (
	"context"
	"errors"
	"strings"

	"github.com/smallbiznis/plantdesk/internal/config"
	obsmetrics "github.com/smallbiznis/plantdesk/internal/observability/metrics"
	"github.com/smallbiznis/plantdesk/internal/observability/tracing"
	"github.com/smallbiznis/plantdesk/internal/providers/pdf"
	"github.com/smallbiznis/plantdesk/internal/providers/spreadsheet"
	"github.com/smallbiznis/plantdesk/pkg/tabular"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Format is the representation requested for a report download.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatText Format = "txt"
)

var ErrUnsupportedFormat = errors.New("unsupported_format")

// ParseFormat accepts an empty value as json.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatText, "text":
		return FormatText, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

type Params struct {
	fx.In

	Log         *zap.Logger
	Spreadsheet spreadsheet.Provider
	PDF         pdf.Provider
	OpsConf     *config.OperationsConfigHolder `optional:"true"`
	ObsMetrics  *obsmetrics.Metrics            `optional:"true"`
}

type Exporter struct {
	log         *zap.Logger
	spreadsheet spreadsheet.Provider
	pdf         pdf.Provider
	opsConf     *config.OperationsConfigHolder
	obsMetrics  *obsmetrics.Metrics
}

func New(p Params) *Exporter {
	return &Exporter{
		log:         p.Log.Named("export"),
		spreadsheet: p.Spreadsheet,
		pdf:         p.PDF,
		opsConf:     p.OpsConf,
		obsMetrics:  p.ObsMetrics,
	}
}

// Export renders table in one of the file formats. report names the report
// for metrics only.
func (e *Exporter) Export(ctx context.Context, report string, format Format, table tabular.Table) (file File, err error) {
	ctx, span := tracing.Start(ctx, "export.Export",
		attribute.String("report", report),
		attribute.String("format", string(format)),
	)
	defer func() { tracing.End(span, err) }()

	exportCfg := e.exportConfig()
	layout := tabular.Layout{
		Delimiter:   exportCfg.Delimiter,
		LineWidth:   exportCfg.LineWidth,
		RowsPerPage: exportCfg.RowsPerPage,
	}

	switch format {
	case FormatXLSX:
		body, err := e.spreadsheet.Render(ctx, table, exportCfg.SheetName)
		if err != nil {
			return File{}, err
		}
		file = File{Name: tabular.FileName(table.Title, "xlsx"), ContentType: spreadsheet.ContentType, Body: body}
	case FormatPDF:
		body, err := e.pdf.Render(ctx, table, layout)
		if err != nil {
			return File{}, err
		}
		file = File{Name: tabular.FileName(table.Title, "pdf"), ContentType: pdf.ContentType, Body: body}
	case FormatText:
		file = File{
			Name:        tabular.FileName(table.Title, "txt"),
			ContentType: tabular.ContentTypeText,
			Body:        tabular.RenderText(table, layout),
		}
	default:
		return File{}, ErrUnsupportedFormat
	}

	e.obsMetrics.RecordExport(ctx, report, string(format))
	e.log.Debug("report exported",
		zap.String("report", report),
		zap.String("format", string(format)),
		zap.Int("rows", len(table.Rows)),
		zap.Int("bytes", len(file.Body)),
	)
	return file, nil
}

func (e *Exporter) exportConfig() config.ExportConfig {
	if e.opsConf == nil {
		return config.DefaultOperationsConfig().Export
	}
	return e.opsConf.Get().Export
}
