package excel

import "go.uber.org/fx"

var Module = fx.Module("export.excel",
	fx.Provide(New),
)
