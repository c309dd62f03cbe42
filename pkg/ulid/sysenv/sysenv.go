// Package sysenv resolves the clock and randomness dependencies a
// ulid.Generator needs from the host environment.
//
// The core ulid package never probes anything; this package is the
// reference resolver for ordinary hosts (crypto/rand plus the wall clock)
// and owns the policy for hosts that lack one of them. Callers on unusual
// platforms can skip it entirely and build a ulid.Deps by hand.
package sysenv

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	mrand "math/rand"
	"sync"
	"time"

	"sortid.io/pkg/ulid"
)

var (
	// ErrMissingSecureRandomness reports that the entropy source failed a
	// probe read and Options.AllowInsecure was not set.
	ErrMissingSecureRandomness = errors.New("sysenv: no secure randomness source available")

	// ErrMissingPrecisionClock reports that the clock failed its probe and
	// Options.AllowImprecise was not set.
	ErrMissingPrecisionClock = errors.New("sysenv: no millisecond precision clock available")
)

// Options control how Resolve reacts to a degraded host.
type Options struct {
	// AllowInsecure permits falling back to a math/rand source when the
	// entropy source cannot be read. The resulting identifiers are still
	// well formed but their randomness is guessable.
	AllowInsecure bool

	// AllowImprecise permits falling back to a second-resolution clock
	// when the configured clock misbehaves. Identifiers minted within the
	// same second then share their time prefix.
	AllowImprecise bool

	// Reader overrides the entropy source. Nil means crypto/rand.Reader.
	Reader io.Reader

	// Now overrides the clock. Nil means the wall clock in milliseconds.
	Now func() int64
}

// Resolve probes the clock and the entropy source once and returns a
// ulid.Deps pair, applying the fallback policy in opts. The returned pair
// is valid for the life of the process.
func Resolve(opts Options) (ulid.Deps, error) {
	now, err := resolveClock(opts)
	if err != nil {
		return ulid.Deps{}, err
	}

	random, err := resolveRand(opts)
	if err != nil {
		return ulid.Deps{}, err
	}

	return ulid.Deps{Now: now, Rand: random}, nil
}

func wallClock() int64 { return ulid.Timestamp(time.Now()) }

func coarseClock() int64 { return time.Now().Unix() * 1000 }

func resolveClock(opts Options) (func() int64, error) {
	now := opts.Now
	if now == nil {
		now = wallClock
	}

	// A clock that reports a negative millisecond count is unusable for
	// encoding; everything else is the caller's contract to keep.
	if now() >= 0 {
		return now, nil
	}
	if !opts.AllowImprecise {
		return nil, ErrMissingPrecisionClock
	}
	return coarseClock, nil
}

func resolveRand(opts Options) (func(min, max int) int, error) {
	r := opts.Reader
	if r == nil {
		r = rand.Reader
	}

	var probe [1]byte
	if _, err := io.ReadFull(r, probe[:]); err != nil {
		if !opts.AllowInsecure {
			return nil, ErrMissingSecureRandomness
		}
		return insecureUniform(time.Now().UnixNano()), nil
	}
	return uniform(r), nil
}

// uniform adapts an entropy stream to the inclusive-range contract of
// ulid.Deps.Rand, using rejection sampling so every value in [min, max] is
// equally likely. A read failure after the successful probe is treated as
// fatal, matching the no-error signature of the contract.
func uniform(r io.Reader) func(min, max int) int {
	return func(min, max int) int {
		if min > max {
			panic(fmt.Sprintf("sysenv: uniform range [%d, %d] is inverted", min, max))
		}

		n := uint64(max-min) + 1
		limit := math.MaxUint64 - math.MaxUint64%n

		var buf [8]byte
		for {
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				panic(fmt.Sprintf("sysenv: entropy source failed: %v", err))
			}
			v := binary.BigEndian.Uint64(buf[:])
			if v < limit {
				return min + int(v%n)
			}
		}
	}
}

// insecureUniform is the AllowInsecure fallback. math/rand sources are not
// safe for concurrent use, so draws are serialized.
func insecureUniform(seed int64) func(min, max int) int {
	var (
		mu  sync.Mutex
		rng = mrand.New(mrand.NewSource(seed))
	)
	return func(min, max int) int {
		if min > max {
			panic(fmt.Sprintf("sysenv: uniform range [%d, %d] is inverted", min, max))
		}
		mu.Lock()
		defer mu.Unlock()
		return min + rng.Intn(max-min+1)
	}
}
