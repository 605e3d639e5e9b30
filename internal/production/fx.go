package production

import (
	"github.com/smallbiznis/plantdesk/internal/production/repository"
	"github.com/smallbiznis/plantdesk/internal/production/service"
	"go.uber.org/fx"
)

var Module = fx.Module("production.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
