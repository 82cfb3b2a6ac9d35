// Package timeresolve turns post timestamp labels into absolute instants.
package timeresolve

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
)

var unitPatterns = []struct {
	re   *regexp.Regexp
	unit time.Duration
}{
	{regexp.MustCompile(`(\d+)\s*m`), time.Minute},
	{regexp.MustCompile(`(\d+)\s*h`), time.Hour},
	{regexp.MustCompile(`(\d+)\s*d`), 24 * time.Hour},
}

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

type Resolver struct {
	clock clockwork.Clock
}

func New(clock clockwork.Clock) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{clock: clock}
}

// Resolve reads a date node. A nil node resolves to now.
func (r *Resolver) Resolve(n dom.Node) time.Time {
	if n == nil {
		return r.now()
	}
	if raw, ok := n.Attr("datetime"); ok && strings.TrimSpace(raw) != "" {
		if t, ok := ParseTimestamp(raw); ok {
			return t
		}
	}
	return r.ResolveLabel(n.Text())
}

// ResolveLabel subtracts the first minute, hour or day magnitude in label from now.
func (r *Resolver) ResolveLabel(label string) time.Time {
	now := r.now()
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" || strings.Contains(lower, "now") || strings.Contains(lower, "just") {
		return now
	}

	for _, p := range unitPatterns {
		m := p.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return now
		}
		return now.Add(-time.Duration(n) * p.unit)
	}
	return now
}

func (r *Resolver) now() time.Time {
	return r.clock.Now().UTC()
}

// ParseTimestamp parses a machine-readable timestamp attribute.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}
