package parserimpl

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/locator"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/metrics"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/parser"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/timeresolve"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"go.uber.org/fx"
)

// SessionConfig bounds the waits of one extraction session.
type SessionConfig struct {
	LookAheadFactor int
	WaitTimeout     time.Duration
	PollInterval    time.Duration
	ScrollSteps     int
	ScrollDistance  int
	ScrollInterval  time.Duration
	SettleDelay     time.Duration
}

func SessionConfigFrom(cfg *config.Config) SessionConfig {
	return SessionConfig{
		LookAheadFactor: cfg.Extractor.LookAheadFactor,
		WaitTimeout:     cfg.Extractor.WaitTimeout,
		PollInterval:    cfg.Extractor.PollInterval,
		ScrollSteps:     cfg.Extractor.ScrollSteps,
		ScrollDistance:  cfg.Extractor.ScrollDistance,
		ScrollInterval:  cfg.Extractor.ScrollInterval,
		SettleDelay:     cfg.Extractor.SettleDelay,
	}
}

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Table   locator.Table
	Clock   clockwork.Clock
	Metrics *metrics.Metrics `optional:"true"`
}

type ParserImpl struct {
	Logger   logger.Logger
	Table    locator.Table
	Locator  *locator.Locator
	Resolver *timeresolve.Resolver
	Clock    clockwork.Clock
	Metrics  *metrics.Metrics
	Session  SessionConfig
}

func New(opts Opts) *ParserImpl {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	table := opts.Table
	if table == nil {
		table = locator.DefaultTable()
	}

	log := opts.Logger.WithComponent("Parser")
	m := opts.Metrics

	return &ParserImpl{
		Logger: log,
		Table:  table,
		Locator: locator.New(opts.Logger, locator.WithFailureHook(func(p locator.Pattern, err error) {
			m.PatternFailure(p.String())
		})),
		Resolver: timeresolve.New(clock),
		Clock:    clock,
		Metrics:  m,
		Session:  SessionConfigFrom(opts.Config),
	}
}

var _ parser.Client = (*ParserImpl)(nil)

func (p *ParserImpl) patterns(role locator.Role) []locator.Pattern {
	return p.Table.Get(role)
}
