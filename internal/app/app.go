package app

import (
	"github.com/jonboulle/clockwork"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/cache"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command/commandimpl"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/locator"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/metrics"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/page"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/parser"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/parser/parserimpl"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/ratelimit"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/repositories/entry"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/server"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/sweeper"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"go.uber.org/fx"
)

// Core wires the extraction pipeline and its storage.
var Core = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		clockwork.NewRealClock,
		metrics.New,
		newTable,
	),
	fx.Provide(
		fx.Annotate(
			parserimpl.New,
			fx.As(new(parser.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	entry.Module,
	cache.Module,
	page.Module,
)

// App is the long running service: the command surface over HTTP plus the cache sweeper.
var App = fx.Options(
	Core,
	fx.Provide(ratelimit.NewFromConfig),
	server.Module,
	sweeper.Module,
)

func newTable(cfg *config.Config, log logger.Logger) (locator.Table, error) {
	table, err := locator.LoadTableFile(cfg.Extractor.PatternsFile)
	if err != nil {
		return nil, err
	}
	if cfg.Extractor.PatternsFile != "" {
		log.Info("Loaded pattern overrides", "file", cfg.Extractor.PatternsFile)
	}
	return table, nil
}
