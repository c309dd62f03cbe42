// Package id implements a unique identifier.
package id

import (
	"sortid.io/pkg/ulid"
	"sortid.io/pkg/ulid/sysenv"
)

// global is the process-wide monotonic generator backing New.
var global = mustGenerator()

func mustGenerator() *ulid.Generator {
	deps, err := sysenv.Resolve(sysenv.Options{})
	if err != nil {
		panic(err)
	}
	g, err := ulid.New(ulid.Config{Monotonic: true, Deps: deps})
	if err != nil {
		panic(err)
	}
	return g
}

// New returns a unique identifier.
// The format is a Universally Unique Lexicographically Sortable Identifier (ULID).
// Identifiers from New are strictly increasing within this process.
func New() string {
	s, err := global.New()
	if err != nil {
		// Only reachable after 2^80 identifiers within one millisecond.
		panic(err)
	}
	return s
}

// Once returns a single ULID from a throwaway non-monotonic generator.
// When relaxed is set, hosts without secure entropy or a precise clock are
// tolerated; otherwise resolution fails the way sysenv.Resolve does. A
// negative ms means "use the current time".
func Once(ms int64, relaxed bool) (string, error) {
	deps, err := sysenv.Resolve(sysenv.Options{AllowInsecure: relaxed, AllowImprecise: relaxed})
	if err != nil {
		return "", err
	}
	g, err := ulid.New(ulid.Config{Deps: deps})
	if err != nil {
		return "", err
	}
	if ms < 0 {
		return g.New()
	}
	return g.NewAt(ms)
}
