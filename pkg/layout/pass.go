package layout

import (
	"io"

	"github.com/charmbracelet/log"
)

// DefaultMaxFloatAttempts bounds how many times floats may be applied to
// line boxes during one layout pass.
const DefaultMaxFloatAttempts = 1000

// Pass holds the state shared by every line box built during one layout
// pass: the active floats and the float attempt guard. A Pass must not be
// shared between documents; call Reset or create a new one.
type Pass struct {
	Floats *FloatRegistry

	maxAttempts int
	attempts    int
	warned      bool
	logger      *log.Logger
}

// PassOption configures a Pass.
type PassOption func(*Pass)

// WithMaxFloatAttempts overrides DefaultMaxFloatAttempts. Values < 0 are
// treated as 0, which force-retires every float on first contact.
func WithMaxFloatAttempts(n int) PassOption {
	return func(p *Pass) {
		if n < 0 {
			n = 0
		}
		p.maxAttempts = n
	}
}

// WithPassLogger routes float tracing to l.
func WithPassLogger(l *log.Logger) PassOption {
	return func(p *Pass) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewPass(opts ...PassOption) *Pass {
	p := &Pass{
		Floats:      NewFloatRegistry(),
		maxAttempts: DefaultMaxFloatAttempts,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reset prepares the pass for a new document: a fresh registry and a
// zeroed attempt counter.
func (p *Pass) Reset() {
	p.Floats = NewFloatRegistry()
	p.attempts = 0
	p.warned = false
}

// Attempts returns how many float applications have been granted.
func (p *Pass) Attempts() int { return p.attempts }

// MaxAttempts returns the attempt limit for this pass.
func (p *Pass) MaxAttempts() int { return p.maxAttempts }

// Exhausted reports whether the attempt guard has tripped, after which
// every float still contending is retired instead of applied.
func (p *Pass) Exhausted() bool { return p.attempts >= p.maxAttempts }

// attempt consumes one unit of the guard and reports whether it was
// granted.
func (p *Pass) attempt() bool {
	if p.attempts >= p.maxAttempts {
		if !p.warned {
			p.warned = true
			p.logger.Warn("float attempt limit reached, retiring contending floats", "limit", p.maxAttempts)
		}
		return false
	}
	p.attempts++
	return true
}
