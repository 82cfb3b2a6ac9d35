package page

import (
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("page",
	fx.Provide(
		func(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (Opener, error) {
			if !cfg.Browser.Enabled {
				return DisabledOpener{}, nil
			}
			return NewPlaywrightManager(lc, cfg, log)
		},
	),
)
