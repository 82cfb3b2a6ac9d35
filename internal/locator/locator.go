// Package locator finds nodes with ordered pattern lists where the first
// pattern that yields anything wins.
package locator

import (
	"fmt"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
)

// FailureHook observes patterns that failed to evaluate.
type FailureHook func(pattern Pattern, err error)

type Locator struct {
	logger    logger.Logger
	onFailure FailureHook
}

type Option func(*Locator)

func WithFailureHook(h FailureHook) Option {
	return func(l *Locator) {
		l.onFailure = h
	}
}

func New(log logger.Logger, opts ...Option) *Locator {
	l := &Locator{logger: log.WithComponent("Locator")}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FindAll returns the full match set of the first pattern with any match.
func (l *Locator) FindAll(patterns []Pattern, scope dom.Node) []dom.Node {
	if scope == nil {
		return nil
	}
	for _, p := range patterns {
		nodes, err := l.eval(p, scope)
		if err != nil {
			l.logger.Warn("Pattern failed", "pattern", p.String(), "error", err)
			if l.onFailure != nil {
				l.onFailure(p, err)
			}
			continue
		}
		if len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}

// FindOne returns the first node of the first matching pattern, or nil.
func (l *Locator) FindOne(patterns []Pattern, scope dom.Node) dom.Node {
	nodes := l.FindAll(patterns, scope)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// Exists reports whether any pattern matches at all.
func (l *Locator) Exists(patterns []Pattern, scope dom.Node) bool {
	return l.FindOne(patterns, scope) != nil
}

func (l *Locator) eval(p Pattern, scope dom.Node) (nodes []dom.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			nodes, err = nil, fmt.Errorf("pattern panicked: %v", r)
		}
	}()
	return p.Match(scope)
}
