package meta

import (
	"fmt"

	"github.com/coregx/thompson/literal"
	"github.com/coregx/thompson/prefilter"
)

// Strategy is the way an Engine answers Run.
type Strategy int

const (
	// UseNFA simulates the automaton for every input.
	UseNFA Strategy = iota

	// UsePrefilter rejects inputs that start with none of the prefix
	// literals, then simulates the automaton for the rest.
	UsePrefilter

	// UseLiteralSet answers by set membership. Selected when the pattern
	// denotes a finite set of strings within the configured limits.
	UseLiteralSet
)

// String returns a human-readable representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "UseNFA"
	case UsePrefilter:
		return "UsePrefilter"
	case UseLiteralSet:
		return "UseLiteralSet"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// selectStrategy picks the cheapest strategy the literal analysis allows.
// It returns the prefilter to use with UsePrefilter, and nil otherwise.
func selectStrategy(res literal.Result, config Config) (Strategy, prefilter.Prefilter) {
	if config.EnableLiteralSet && res.Exact.IsFinite() && res.Exact.AllComplete() {
		return UseLiteralSet, nil
	}
	if config.EnablePrefilter {
		if pf := prefilter.New(res.Prefixes); pf != nil {
			return UsePrefilter, pf
		}
	}
	return UseNFA, nil
}
