package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/rustyeddy/tradeboard/auth"
	"github.com/rustyeddy/tradeboard/board"
	"github.com/rustyeddy/tradeboard/config"
	"github.com/rustyeddy/tradeboard/internal/logging"
	"github.com/rustyeddy/tradeboard/journal"
	"github.com/rustyeddy/tradeboard/market"
	"github.com/rustyeddy/tradeboard/source"
	"github.com/rustyeddy/tradeboard/trade"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "tradeboard.yaml"

var rootCmd = &cobra.Command{
	Use:   "tradeboard",
	Short: "Analytics dashboard for a crypto trade journal spreadsheet",
	Long: `Tradeboard reads a trade journal kept in a spreadsheet (Google Sheets,
an XLSX workbook or a CSV export), normalizes the closed round trips and
reports on them.

It provides:
  - Summary indicators (gain, loss, fees, hit ratio, averages)
  - Daily net P&L and the cumulative equity curve
  - Insight cards (best and worst trades, most traded coin)
  - PNG charts and org-mode reports
  - An HTTP dashboard behind a shared passphrase`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvFiles(envFiles...)
	},
}

var (
	cfgFile     string
	passphrase  string
	logLevel    string
	logFormat   string
	envFiles    []string
	instruments []string
	side        string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default "+defaultConfigPath+" when present)")
	pf.StringVar(&passphrase, "passphrase", "", "dashboard passphrase (or $"+config.EnvLogin+")")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	pf.StringVar(&logFormat, "log-format", "console", "log encoding: console|json")
	pf.StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")
	pf.StringSliceVar(&instruments, "instrument", nil, "only these instruments (repeatable)")
	pf.StringVar(&side, "side", "", "only LONG or SHORT trades")
}

// Execute runs the CLI until done or interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.LoadFromFile(path)
	switch {
	case err == nil:
	case cfgFile == "" && errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	default:
		return nil, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func filter() (trade.Filter, error) {
	f := trade.Filter{Instruments: instruments}
	if side != "" {
		s, err := market.LookupSide(side)
		if err != nil {
			return trade.Filter{}, fmt.Errorf("--side: %w", err)
		}
		f.Side = s
	}
	return f, nil
}

// app is what a command needs to run the pipeline.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	exporter journal.Exporter
	pipeline *board.Pipeline
}

// setup loads config, applies tweaks, opens the gate when asked and wires
// the pipeline.
func setup(cmd *cobra.Command, gated bool, tweaks ...func(*config.Config)) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	for _, tweak := range tweaks {
		tweak(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if gated {
		candidate := passphrase
		if candidate == "" {
			candidate = os.Getenv(config.EnvLogin)
		}
		if _, err := auth.NewGate(cfg.Passphrase, nil).Login(candidate); err != nil {
			return nil, err
		}
	}

	log, err := logging.New(cfg.LogLevel, logFormat)
	if err != nil {
		return nil, err
	}
	a, err := wire(cmd, cfg, log)
	if err != nil {
		log.Error("setup failed", zap.Error(err))
		_ = log.Sync()
		return nil, err
	}
	return a, nil
}

func wire(cmd *cobra.Command, cfg *config.Config, log *zap.Logger) (*app, error) {
	fetcher, err := source.New(cmd.Context(), cfg.Source)
	if err != nil {
		return nil, err
	}
	exp, err := journal.New(cfg.Export)
	if err != nil {
		return nil, err
	}
	p, err := board.New(fetcher, exp, cfg, log)
	if err != nil {
		_ = exp.Close()
		return nil, err
	}
	return &app{cfg: cfg, log: log, exporter: exp, pipeline: p}, nil
}

func (a *app) Close() {
	if err := a.exporter.Close(); err != nil {
		a.log.Warn("close exporter", zap.Error(err))
	}
	_ = a.log.Sync()
}

// view runs the gated pipeline once with the filter flags.
func view(cmd *cobra.Command) (*board.View, *app, error) {
	f, err := filter()
	if err != nil {
		return nil, nil, err
	}
	a, err := setup(cmd, true)
	if err != nil {
		return nil, nil, err
	}
	v, err := a.pipeline.Build(cmd.Context(), f)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return v, a, nil
}
