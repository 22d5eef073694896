package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	remoteagent "github.com/Objective-Corporation/3sixty-mongo-remoteagent"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/config"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/logger"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagPretty   = "pretty"
	flagMetrics  = "metrics"
	flagRepo     = "repo"
	flagID       = "id"
)

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    flagConfig,
		Aliases: []string{"c"},
		Usage:   "Path to the repositories file",
		Value:   "mongoagent.yaml",
		EnvVars: []string{"MONGOAGENT_CONFIG"},
	},
	&cli.StringFlag{
		Name:  flagLogLevel,
		Usage: "Log level (trace, debug, info, warn, error). Overrides the file",
	},
	&cli.BoolFlag{
		Name:  flagPretty,
		Usage: "Human readable log output",
	},
	&cli.BoolFlag{
		Name:  flagMetrics,
		Usage: "Print collected metrics to stderr on exit",
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:    "mongoagent",
		Usage:   "Read and write documents of MongoDB repositories",
		Version: remoteagent.Version,
		Flags:   globalFlags,
		Commands: []*cli.Command{
			listCommand(),
			getCommand(),
			metadataCommand(),
			binaryCommand(),
			deleteCommand(),
			writeCommand(),
			versionCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env is the state shared by the commands of one invocation.
type env struct {
	file     *config.File
	log      zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	repos    *remoteagent.Repositories
	dump     bool
}

func setup(c *cli.Context) (*env, error) {
	file, err := config.Load(c.String(flagConfig))
	if err != nil {
		return nil, err
	}
	level := file.Log.Level
	if c.IsSet(flagLogLevel) {
		level = c.String(flagLogLevel)
	}
	reg := prometheus.NewRegistry()
	return &env{
		file:     file,
		log:      logger.New(logger.Config{Level: level, Pretty: file.Log.Pretty || c.Bool(flagPretty)}),
		registry: reg,
		metrics:  metrics.New(reg),
		repos:    remoteagent.NewRepositories(),
		dump:     c.Bool(flagMetrics),
	}, nil
}

func (e *env) options() []remoteagent.Option {
	return []remoteagent.Option{
		remoteagent.WithLogger(e.log),
		remoteagent.WithMetrics(e.metrics),
		remoteagent.WithMaxWorkers(e.file.Writer.MaxWorkers),
	}
}

func (e *env) params(name string) (config.MapParameters, error) {
	repo, err := e.file.Repository(name)
	if err != nil {
		return config.MapParameters{}, fmt.Errorf("%w (configured: %v)", err, e.file.RepositoryNames())
	}
	return repo.Params(), nil
}

// connect opens the read side of the named repository and registers it.
func (e *env) connect(ctx context.Context, name string) (*remoteagent.Connector, error) {
	params, err := e.params(name)
	if err != nil {
		return nil, err
	}
	return e.repos.Open(ctx, name, params, e.options()...)
}

func (e *env) close() {
	if !e.dump {
		return
	}
	families, err := e.registry.Gather()
	if err != nil {
		e.log.Warn().Err(err).Msg("Failed to gather metrics")
		return
	}
	enc := expfmt.NewEncoder(os.Stderr, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			e.log.Warn().Err(err).Msg("Failed to encode metrics")
			return
		}
	}
}

// withRepository wraps a command body that needs an open connector.
func withRepository(run func(ctx context.Context, e *env, conn *remoteagent.Connector, c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := setup(c)
		if err != nil {
			return err
		}
		defer e.close()

		ctx := c.Context
		conn, err := e.connect(ctx, c.String(flagRepo))
		if err != nil {
			return err
		}
		defer func() {
			if err := e.repos.CloseAll(context.WithoutCancel(ctx)); err != nil {
				e.log.Warn().Err(err).Msg("Failed to close repositories")
			}
		}()
		return run(ctx, e, conn, c)
	}
}
