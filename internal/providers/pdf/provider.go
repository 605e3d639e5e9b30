package pdf

import (
	"context"

	"github.com/smallbiznis/plantdesk/pkg/tabular"
)

const ContentType = "application/pdf"

// Provider renders report tables as printable documents.
type Provider interface {
	Render(ctx context.Context, table tabular.Table, layout tabular.Layout) ([]byte, error)
}
