package commandimpl

import (
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/cache"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/metrics"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/page"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/parser"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/repositories/entry"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Parser   parser.Client
	Pages    page.Opener
	Sources  *cache.Sources
	Handoffs *cache.Handoffs
	Entries  entry.Repository
	Logger   logger.Logger
	Config   *config.Config
	Clock    clockwork.Clock
	Metrics  *metrics.Metrics `optional:"true"`
}

type CommandImpl struct {
	Parser   parser.Client
	Pages    page.Opener
	Sources  *cache.Sources
	Handoffs *cache.Handoffs
	Entries  entry.Repository
	Logger   logger.Logger
	Config   *config.Config
	Clock    clockwork.Clock
	Metrics  *metrics.Metrics

	// inflight holds the source ids with a running extraction.
	inflight sync.Map
}

func New(opts Opts) *CommandImpl {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	pages := opts.Pages
	if pages == nil {
		pages = page.DisabledOpener{}
	}
	return &CommandImpl{
		Parser:   opts.Parser,
		Pages:    pages,
		Sources:  opts.Sources,
		Handoffs: opts.Handoffs,
		Entries:  opts.Entries,
		Logger:   opts.Logger.WithComponent("Command"),
		Config:   opts.Config,
		Clock:    clock,
		Metrics:  opts.Metrics,
	}
}

var _ command.Client = (*CommandImpl)(nil)

// acquire marks sourceID busy. The returned func clears it.
func (c *CommandImpl) acquire(sourceID string) (func(), bool) {
	if _, busy := c.inflight.LoadOrStore(sourceID, struct{}{}); busy {
		return nil, false
	}
	return func() { c.inflight.Delete(sourceID) }, true
}
