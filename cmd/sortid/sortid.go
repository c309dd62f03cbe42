package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"sortid.io/pkg/log"
	"sortid.io/pkg/version"
)

// write a pid so that the server can be restarted with SIGHUP
func writePID(path string) error {
	if err := ioutil.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		return fmt.Errorf("writing pidfile: %w", err)
	}
	return nil
}

type cliFlags struct {
	debug   bool
	http    string
	pidfile string

	allowInsecure  bool
	allowImprecise bool
	maxBatch       int
}

func sortid(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		logger log.Logger
		ctx    = context.Background()
		cli    = &cliFlags{}
		rootfs = flag.NewFlagSet("sortid", flag.ContinueOnError)
		_      = rootfs.String("config", "", "Path to config file (optional)")
	)

	rootfs.StringVar(&cli.pidfile, "pidfile", "/tmp/sortid.pid", "Path to server pidfile")
	rootfs.BoolVar(&cli.debug, "debug", false, "Allow debug level")
	rootfs.StringVar(&cli.http, "http", "localhost:9000", "HTTP service address")
	rootfs.BoolVar(&cli.allowInsecure, "allow_insecure_entropy", false, "Tolerate hosts without secure randomness")
	rootfs.BoolVar(&cli.allowImprecise, "allow_imprecise_clock", false, "Tolerate hosts without a millisecond clock")
	rootfs.IntVar(&cli.maxBatch, "max_batch", 1000, "Largest number of ULIDs minted per HTTP request")

	// default output is os.Stderr.
	// setting the output and flag.ContinueOnError allows testing usage.
	rootfs.SetOutput(stderr)

	versionCmd := &ffcli.Command{
		Name:       "version",
		ShortUsage: "version [<arg> ...]",
		ShortHelp:  "Print version information.",
		Exec: func(_ context.Context, args []string) error {
			return version.PrintFull()
		},
	}

	// add a help subcommand to make usage more discoverable.
	helpCmd := &ffcli.Command{
		Name:      "help",
		ShortHelp: "Print this help text.",
		UsageFunc: func(c *ffcli.Command) string { return "" },
		Exec: func(_ context.Context, args []string) error {
			rootfs.Usage()
			return flag.ErrHelp
		},
	}

	root := &ffcli.Command{
		ShortUsage:  "sortid [flags] <subcommand>",
		FlagSet:     rootfs,
		Options:     []ff.Option{ff.WithEnvVarPrefix("SORTID"), ff.WithConfigFileParser(ff.PlainParser), ff.WithConfigFileFlag("config")},
		Subcommands: []*ffcli.Command{helpCmd, versionCmd, newCmd(stdout)},
		Exec: func(context.Context, []string) error {

			logOpts := []log.Option{log.Output(stderr)}
			if cli.debug {
				logOpts = append(logOpts, log.StartDebug())
			}

			logger = log.New(logOpts...)

			if err := writePID(cli.pidfile); err != nil {
				return err
			}

			srv, err := setup(ctx, cli, logger)
			if err != nil {
				return err
			}

			// run.Group manages lifecycles of various long running goroutines:
			// - signal handlers for SIGTERM/SIGHUP etc.
			// - http.Server listeners.
			var g run.Group
			{
				server := &http.Server{
					Handler: srv.api.Handler(),
					Addr:    cli.http,
				}

				g.Add(func() error {
					log.Info(logger).Log("component", "httpapi", "msg", "started", "addr", cli.http)
					return server.ListenAndServe()
				}, func(error) {
					ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
					defer cancel()
					server.Shutdown(ctx)
				})
			}
			{
				// when the binary receives SIGINT or SIGTERM, execution is cancelled
				ctx, cancel := context.WithCancel(ctx)
				g.Add(func() error {
					c := make(chan os.Signal, 1)
					signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
					select {
					case <-ctx.Done():
						return ctx.Err()
					case sig := <-c:
						return fmt.Errorf("received signal %s", sig)
					}
				}, func(error) {
					os.Remove(cli.pidfile)
					cancel()
				})
			}

			{
				// restart the process after SIGHUP. Mainly used for development,
				// restarting for config changes.
				ctx, cancel := context.WithCancel(ctx)
				g.Add(func() error {
					c := make(chan os.Signal, 1)
					signal.Notify(c, syscall.SIGHUP)
					for {
						select {
						case <-ctx.Done():
							return ctx.Err()
						case sig := <-c:
							log.Info(logger).Log("msg", "restarting process", "signal", sig.String())
							syscall.Exec(args[0], args, os.Environ())
						}
					}
				}, func(error) {
					cancel()
				})
			}

			return g.Run()
		},
	}

	switch err := root.ParseAndRun(ctx, args[1:]); {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 2
	default:
		if logger == nil {
			// parse errors happen before Exec configures the logger.
			logger = log.New(log.Output(stderr))
		}
		log.Info(logger).Log("exit", err)
		return 1
	}
}

func main() { os.Exit(sortid(os.Args, os.Stdin, os.Stdout, os.Stderr)) }
