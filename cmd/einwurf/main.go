// Command einwurf serves the submission form and relays each entry to the configured destination
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"einwurf/internal/modkit"
	"einwurf/internal/modkit/httpkit"
	"einwurf/internal/platform/config"
	perr "einwurf/internal/platform/errors"
	"einwurf/internal/platform/logger"
	phttp "einwurf/internal/platform/net/http"

	"einwurf/internal/services/relay/domain"
	relay "einwurf/internal/services/relay/module"
	"einwurf/internal/services/relay/settings"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := logger.Get()
	err := run(ctx, os.Args[1:])
	switch {
	case err == nil:
	case perr.IsCode(err, perr.ErrorCodeConfig):
		ev := l.Fatal().Err(err)
		if e, ok := perr.As(err); ok && e.Field() != "" {
			ev = ev.Str("field", e.Field())
		}
		ev.Msg("invalid configuration")
	default:
		l.Fatal().Err(err).Msg("einwurf stopped")
	}
}

// run loads the settings before anything binds, then serves until ctx is done
func run(ctx context.Context, args []string) error {
	env := config.New().Prefix("EINWURF_")

	fs := flag.NewFlagSet("einwurf", flag.ContinueOnError)
	path := fs.String("config", env.MayString("CONFIG", "config.toml"), "path to the TOML or YAML settings file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad arguments")
	}

	cfg, err := settings.Load(*path)
	if err != nil {
		return err
	}

	l := logger.Named("main")
	l.Info().
		Str("config", *path).
		Str("destination", string(cfg.Destination)).
		Msg("settings loaded")

	srv := phttp.NewServer(phttp.ServerOptions{
		Addr:              phttp.JoinHostPort(cfg.ListenAddress.String(), cfg.ListenPort),
		ReadHeaderTimeout: env.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		ShutdownTimeout:   env.MayDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	})
	mount(srv.Router(), env, cfg)

	return srv.Run(ctx)
}

// mount installs the common stack on the root router and mounts the relay module
func mount(r phttp.Router, env config.Conf, cfg domain.Config) {
	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: env.MayCSV("CORS_ORIGINS", nil),
	})...)

	deps := modkit.Deps{
		Log:    logger.Named("relay"),
		Cfg:    env,
		Client: http.DefaultClient,
	}
	relay.New(deps, cfg).MountRoutes(r)
}
