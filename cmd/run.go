package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/listenup/internal/app"
	"github.com/abhisek/listenup/internal/config"
	"github.com/abhisek/listenup/internal/logger"
	"github.com/abhisek/listenup/internal/question"
	"github.com/abhisek/listenup/internal/store"
)

// env bundles what every command needs: merged config, a logger and, when
// asked for, the question bank and history store.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	logOut io.Closer
	bank   *question.Bank
	store  *store.Store
}

type needs struct {
	bank  bool
	store bool
}

func setup(cmd *cobra.Command, n needs) (*env, error) {
	cfg, err := config.Load(config.Options{Flags: cmd.Flags()})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, closer, err := logger.Setup(logger.Config{
		File:   cfg.Log.File,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	e := &env{cfg: cfg, log: log.With().Str("cmd", cmd.Name()).Logger(), logOut: closer}

	if n.bank {
		if e.bank, err = loadBank(cfg.Questions); err != nil {
			e.Close()
			return nil, err
		}
		e.log.Debug().Str("title", e.bank.Title()).Int("questions", e.bank.Len()).Msg("question bank loaded")
	}

	if n.store {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		if e.store, err = store.Open(dbPath); err != nil {
			e.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.log.Debug().Str("db", dbPath).Msg("history store opened")
	}

	return e, nil
}

// Close releases the store and the log file.
func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.log.Warn().Err(err).Msg("close store")
		}
	}
	_ = e.logOut.Close()
}

func (e *env) repo() store.EventRepo {
	if e.store == nil {
		return store.NopEventRepo{}
	}
	return e.store.EventRepo()
}

func loadBank(path string) (*question.Bank, error) {
	if path == "" {
		return question.Default()
	}
	bank, err := question.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return bank, nil
}

// resolveDBPath returns the configured database path (--db flag, then
// LISTENUP_DB, then the config file), falling back to the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

var errHistoryDisabled = errors.New("history is disabled")

// runApp loads the bank and store and launches the TUI.
func runApp(cmd *cobra.Command, quickStart bool) error {
	e, err := setup(cmd, needs{bank: true})
	if err != nil {
		return err
	}
	defer e.Close()

	if e.cfg.History.Enabled {
		dbPath, err := resolveDBPath(e.cfg)
		if err == nil {
			e.store, err = store.Open(dbPath)
		}
		if err != nil {
			// Play on without history rather than refuse to start.
			e.log.Warn().Err(err).Msg("history unavailable")
			e.cfg.History.Enabled = false
		}
	}

	return app.Run(app.Options{
		Bank:           e.bank,
		Repo:           e.repo(),
		Logger:         e.log,
		Player:         e.cfg.Player,
		QuickStart:     quickStart,
		HistoryEnabled: e.cfg.History.Enabled,
		HistoryLimit:   e.cfg.History.Limit,
	})
}
