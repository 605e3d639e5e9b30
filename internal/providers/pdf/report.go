package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/plantdesk/pkg/tabular"
)

const (
	titleHeight = 10
	lineHeight  = 4
	fontSize    = 6
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

// Render lays the table out with the same lines as the text report, one
// document page per layout page. Lines use a fixed-width font so columns
// joined by the delimiter stay aligned.
func (p *PDFProvider) Render(ctx context.Context, table tabular.Table, layout tabular.Layout) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Sayfa {current} / {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	pages := make([]core.Page, 0)
	for _, chunk := range table.Pages(layout) {
		rows := []core.Row{
			text.NewRow(titleHeight, tabular.Truncate(table.Title, lineWidth(layout)), props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			row.New(lineHeight).Add(text.NewCol(12, chunk.Header, props.Text{
				Family: fontfamily.Courier,
				Size:   fontSize,
				Style:  fontstyle.Bold,
			})),
		}
		for _, line := range chunk.Lines {
			rows = append(rows, row.New(lineHeight).Add(text.NewCol(12, line, props.Text{
				Family: fontfamily.Courier,
				Size:   fontSize,
			})))
		}
		pages = append(pages, page.New().Add(rows...))
	}
	m.AddPages(pages...)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return doc.GetBytes(), nil
}

func lineWidth(layout tabular.Layout) int {
	if layout.LineWidth <= 0 {
		return tabular.DefaultLayout().LineWidth
	}
	return layout.LineWidth
}
