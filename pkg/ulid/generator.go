package ulid

import (
	"errors"
	"sync"
	"time"
)

// Deps are the two external collaborators a Generator needs. Both are
// supplied once at construction and treated as immutable afterwards.
//
// Now must return non-negative milliseconds since the Unix epoch.
// Rand must return a uniform integer in the inclusive range [min, max].
type Deps struct {
	Now  func() int64
	Rand func(min, max int) int
}

// Config describes a Generator. The zero value is not usable: Deps must be
// populated, typically via sysenv.Resolve.
type Config struct {
	// Monotonic guarantees strictly increasing output for identifiers
	// generated within the same millisecond, at the cost of a mutex
	// around every call.
	Monotonic bool

	Deps Deps
}

// Generator mints ULIDs. A non-monotonic Generator is stateless per call
// and safe for concurrent use. A monotonic Generator serializes calls
// internally; its ordering guarantee holds per instance, never across
// instances.
type Generator struct {
	now       func() int64
	rand      func(min, max int) int
	monotonic bool

	mu       sync.Mutex
	lastMS   int64
	lastRand [RandLen]byte // digit indices, not characters
}

// New creates a Generator from config. It fails if either dependency
// function is missing; this package never resolves dependencies itself.
func New(config Config) (*Generator, error) {
	if config.Deps.Now == nil {
		return nil, errors.New("ulid: config missing Now dependency")
	}
	if config.Deps.Rand == nil {
		return nil, errors.New("ulid: config missing Rand dependency")
	}

	return &Generator{
		now:       config.Deps.Now,
		rand:      config.Deps.Rand,
		monotonic: config.Monotonic,
	}, nil
}

// New returns a ULID for the current time as reported by the Now dependency.
func (g *Generator) New() (string, error) { return g.at(g.now()) }

// NewAt returns a ULID for an explicit millisecond timestamp.
func (g *Generator) NewAt(ms int64) (string, error) { return g.at(ms) }

func (g *Generator) at(ms int64) (string, error) {
	if g.monotonic {
		return g.monotonicAt(ms)
	}

	te, err := EncodeTime(ms)
	if err != nil {
		return "", err
	}
	return te + EncodeRandom(g.rand), nil
}

// monotonicAt implements the same-millisecond ordering policy: when time
// advances, adopt it and draw a fresh random tail; when time stalls or
// regresses, keep the last timestamp and increment the last tail so the
// output still sorts after everything minted before it.
func (g *Generator) monotonicAt(ms int64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ms > g.lastMS {
		te, err := EncodeTime(ms)
		if err != nil {
			return "", err
		}
		g.lastMS = ms
		for i := range g.lastRand {
			g.lastRand[i] = byte(g.rand(0, maxDigit))
		}
		return te + encodeDigits(g.lastRand[:]), nil
	}

	if !incrementDigits(g.lastRand[:]) {
		// Pin the tail at its maximum so the next call fails the same
		// way instead of restarting from all zeros and sorting backwards.
		for i := range g.lastRand {
			g.lastRand[i] = maxDigit
		}
		return "", ErrSequenceExhausted
	}

	te, err := EncodeTime(g.lastMS)
	if err != nil {
		return "", err
	}
	return te + encodeDigits(g.lastRand[:]), nil
}

// Timestamp converts a time.Time to the millisecond resolution the codec
// expects.
func Timestamp(t time.Time) int64 { return t.UnixNano() / int64(time.Millisecond) }
