package main

import (
	"context"

	"sortid.io/internal/httpapi"
	"sortid.io/pkg/log"
	"sortid.io/pkg/ulid"
	"sortid.io/pkg/ulid/sysenv"
)

type server struct {
	api *httpapi.Server
}

// setup resolves the clock/entropy dependencies for this host and wires a
// monotonic generator into the HTTP API. The generator is monotonic so a
// batch minted in one request is strictly increasing.
func setup(ctx context.Context, f *cliFlags, logger log.Logger) (*server, error) {
	deps, err := sysenv.Resolve(sysenv.Options{
		AllowInsecure:  f.allowInsecure,
		AllowImprecise: f.allowImprecise,
	})
	if err != nil {
		return nil, err
	}

	gen, err := ulid.New(ulid.Config{Monotonic: true, Deps: deps})
	if err != nil {
		return nil, err
	}

	api, err := httpapi.New(httpapi.Config{
		Logger:    logger,
		Generator: gen,
		MaxBatch:  f.maxBatch,
	})
	if err != nil {
		return nil, err
	}

	log.Debug(logger).Log("msg", "generator ready", "monotonic", true, "insecure_ok", f.allowInsecure)
	return &server{api: api}, nil
}
