package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/arbitrage/config"
	"github.com/rustyeddy/arbitrage/engine"
	"github.com/rustyeddy/arbitrage/internal/logger"
	"github.com/rustyeddy/arbitrage/journal"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/rustyeddy/arbitrage/risk"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// app is what a command needs to run: configuration, the open store and
// an engine over it.
type app struct {
	cfg    *config.Config
	store  *journal.Store
	engine *engine.Engine
	audit  *logger.Audit
	log    zerolog.Logger
	out    io.Writer
	in     *bufio.Reader
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(cfgFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Store.DBPath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Pretty)
	store, err := journal.Open(cfg.Store.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	a := &app{
		cfg:   cfg,
		store: store,
		log:   log,
		out:   cmd.OutOrStdout(),
		in:    bufio.NewReader(cmd.InOrStdin()),
	}
	opts := []engine.Option{
		engine.WithPolicy(cfg.Trading.Policy()),
		engine.WithCurrency(cfg.Trading.Currency),
		engine.WithLogger(log),
	}
	if cfg.Log.AuditFile != "" {
		a.audit = logger.OpenAudit(cfg.Log.AuditFile, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, log)
		opts = append(opts, engine.WithAudit(a.audit))
	}
	a.engine = engine.New(store, opts...)
	return a, nil
}

func (a *app) Close() {
	if a.audit != nil {
		if err := a.audit.Close(); err != nil {
			a.log.Warn().Err(err).Msg("close audit trail")
		}
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close db")
	}
}

// run opens the app, hands it to fn and closes it again.
func run(fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd.Context(), a, args)
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// confirm asks a yes/no question on the command's input. Anything but
// y or yes is a no.
func (a *app) confirm(question string) bool {
	a.printf("%s [y/N]: ", question)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		a.printf("\n")
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "si":
		return true
	}
	return false
}

func (a *app) cash(d decimal.Decimal) string {
	return market.FormatCash(d, a.cfg.Trading.Currency)
}

func (a *app) warnings(ws []risk.Violation) {
	for _, w := range ws {
		a.printf("! %s\n", w.Msg)
	}
}

// cycleOrActive returns the cycle named by id, or the active one when id
// is zero.
func (a *app) cycleOrActive(ctx context.Context, id int64) (int64, error) {
	if id != 0 {
		return id, nil
	}
	c, err := a.engine.ActiveCycle(ctx)
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

// dayOrCurrent returns the day named by id, or the open day of the active
// cycle when id is zero.
func (a *app) dayOrCurrent(ctx context.Context, id int64) (int64, error) {
	if id != 0 {
		return id, nil
	}
	d, err := a.engine.CurrentDay(ctx)
	if err != nil {
		if journal.IsNotFound(err) {
			return 0, fmt.Errorf("no open day; run 'arbitrage day open' first")
		}
		return 0, err
	}
	return d.ID, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseAmount(what, s string) (decimal.Decimal, error) {
	d, err := market.Parse(s)
	if err != nil {
		return d, fmt.Errorf("%s: %w", what, err)
	}
	return d, nil
}

func (a *app) outputFile(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{a.out}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
