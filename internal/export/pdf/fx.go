package pdf

import "go.uber.org/fx"

var Module = fx.Module("export.pdf",
	fx.Provide(New),
)
