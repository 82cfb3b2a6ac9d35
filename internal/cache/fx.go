package cache

import (
	"github.com/jonboulle/clockwork"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/repositories/entry"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"go.uber.org/fx"
)

// Sources memoizes extraction results per source id.
type Sources = Expiring[domain.CachedPosts]

func NewSources(repo entry.Repository, clock clockwork.Clock, log logger.Logger) *Sources {
	return NewExpiring[domain.CachedPosts](SourcePrefix, repo, clock, log)
}

var Module = fx.Module("cache",
	fx.Provide(
		NewSources,
		NewHandoffs,
	),
)
