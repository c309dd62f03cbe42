package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3/ffcli"

	"sortid.io/pkg/ulid"
	"sortid.io/pkg/ulid/sysenv"
)

// newCmd mints ULIDs to stdout, one per line. The generator is monotonic,
// so the printed identifiers are strictly increasing even when they share
// a millisecond.
func newCmd(stdout io.Writer) *ffcli.Command {
	var (
		fs      = flag.NewFlagSet("sortid new", flag.ContinueOnError)
		count   = fs.Int("n", 1, "Number of ULIDs to print")
		ms      = fs.Int64("ms", -1, "Explicit millisecond timestamp; -1 uses the current time")
		relaxed = fs.Bool("relaxed", false, "Tolerate hosts without secure randomness or a precise clock")
	)

	return &ffcli.Command{
		Name:       "new",
		ShortUsage: "sortid new [-n count] [-ms timestamp] [-relaxed]",
		ShortHelp:  "Print one or more ULIDs.",
		FlagSet:    fs,
		Exec: func(_ context.Context, args []string) error {
			if *count < 1 {
				return fmt.Errorf("n must be at least 1, got %d", *count)
			}

			deps, err := sysenv.Resolve(sysenv.Options{
				AllowInsecure:  *relaxed,
				AllowImprecise: *relaxed,
			})
			if err != nil {
				return err
			}

			gen, err := ulid.New(ulid.Config{Monotonic: true, Deps: deps})
			if err != nil {
				return err
			}

			for i := 0; i < *count; i++ {
				var s string
				if *ms >= 0 {
					s, err = gen.NewAt(*ms)
				} else {
					s, err = gen.New()
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, s)
			}
			return nil
		},
	}
}
