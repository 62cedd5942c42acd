package taxpaid

import (
	"github.com/smallbiznis/gstbooks/internal/taxpaid/repository"
	"github.com/smallbiznis/gstbooks/internal/taxpaid/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxpaid.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
