package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	qrng "github.com/albertnieto/quantis-qrng-go"
	"github.com/albertnieto/quantis-qrng-go/internal/config"
)

// sessionAnnotation marks subcommands that talk to the appliance.
// The value "progress" additionally enables transfer progress on stderr.
const sessionAnnotation = "qrand.session"

// cli holds the state of one qrand invocation.
type cli struct {
	v       *viper.Viper
	stderr  io.Writer
	logger  zerolog.Logger
	client  *qrng.Client
	metrics *http.Server

	samples  int
	minInt   int64
	maxInt   int64
	minFloat float64
	maxFloat float64
	stats    bool

	streamSize   uint64
	streamOutput string
	streamQuiet  bool
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *cli) {
	app := &cli{v: config.NewViper(), stderr: stderr, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:               "qrand",
		Short:             "Fetch quantum random numbers from a Quantis appliance",
		SilenceUsage:      true,
		PersistentPreRunE: app.open,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "path to a YAML config file")
	pf.StringP("address", "a", "", "appliance domain address (host or host:port)")
	pf.Bool("insecure", true, "skip TLS certificate verification")
	pf.String("ca-file", "", "PEM file with additional trusted CAs")
	pf.Duration("timeout", 0, "per-request timeout (0 waits forever)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address while the command runs (useful for long stream transfers)")

	for key, flag := range map[string]string{
		"config":       "config",
		"address":      "address",
		"insecure":     "insecure",
		"ca_file":      "ca-file",
		"timeout":      "timeout",
		"log.level":    "log-level",
		"metrics.addr": "metrics-addr",
	} {
		if err := app.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(app.valueCommands()...)
	root.AddCommand(app.streamCommand())
	root.AddCommand(app.infoCommands()...)
	return root, app
}

// open resolves the configuration and opens the appliance session for
// subcommands that need one. A failure here aborts the invocation.
func (a *cli) open(cmd *cobra.Command, args []string) error {
	mode, ok := cmd.Annotations[sessionAnnotation]
	if !ok {
		return nil
	}

	cfg, err := config.FromViper(a.v)
	if err != nil {
		return err
	}

	a.logger, err = newLogger(cfg.Log, a.stderr)
	if err != nil {
		return err
	}

	opts := []qrng.Option{
		qrng.WithLogger(a.logger),
		qrng.WithInsecureSkipVerify(cfg.Insecure),
		qrng.WithTimeout(cfg.Timeout),
		qrng.WithMaxResponseSize(cfg.MaxResponseSize),
	}
	if cfg.CAFile != "" {
		opts = append(opts, qrng.WithRootCAs(cfg.CAFile))
	}
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, qrng.WithMetrics(qrng.NewMetrics(reg)))
		a.startMetrics(cfg.Metrics.Addr, reg)
	}
	if mode == "progress" && !a.streamQuiet {
		opts = append(opts, qrng.WithProgress(newProgressPrinter(a.stderr)))
	}

	a.client, err = qrng.Open(cfg.Address, opts...)
	if err != nil {
		a.logger.Error().Err(err).Msg("open failed")
		return err
	}
	return nil
}

// execute runs cmd with args. The session and metrics listener are
// released whether or not the command succeeded.
func (a *cli) execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	defer a.close()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// close is safe to call when open never ran or failed.
func (a *cli) close() {
	a.client.Close()
	if a.metrics == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = a.metrics.Shutdown(ctx)
}

func newLogger(cfg config.LogConfig, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	var l zerolog.Logger
	if cfg.Format == "json" {
		l = zerolog.New(out)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	}
	return l.Level(level).With().Timestamp().Logger(), nil
}

func (a *cli) startMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	a.metrics = srv
	logger := a.logger
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics listener failed")
		}
	}()
}
