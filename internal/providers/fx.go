package providers

import (
	"github.com/smallbiznis/plantdesk/internal/providers/pdf"
	"github.com/smallbiznis/plantdesk/internal/providers/spreadsheet"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	spreadsheet.Module,
	pdf.Module,
)
