// File: internal/cli/app.go
package cli

import (
	"errors"
	"fmt"
	"log"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iyunix/go-vendornexus/internal/config"
	"github.com/iyunix/go-vendornexus/internal/domain"
	"github.com/iyunix/go-vendornexus/internal/repository/conversation"
	vaultrepo "github.com/iyunix/go-vendornexus/internal/repository/vault"
	"github.com/iyunix/go-vendornexus/internal/services"
	"github.com/iyunix/go-vendornexus/internal/services/ai"
	"github.com/iyunix/go-vendornexus/internal/services/chat"
	"github.com/iyunix/go-vendornexus/internal/services/vault"
)

const serviceName = "vendornexus"

// app holds what every command shares: configuration, the process logger
// and lazily opened storage. close releases everything that was opened.
type app struct {
	cfg    *config.Config
	logger services.Logger

	db      *gorm.DB
	closers []func() error
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, closeLog := services.NewLogger(serviceName, cfg.LogLevel, cfg.LogFile)
	if pl, ok := logger.(*services.ProductionLogger); ok {
		// Repositories log through the standard library; route them here too.
		slog.SetDefault(pl.Slog())
		log.SetFlags(0)
	}
	return &app{cfg: cfg, logger: logger, closers: []func() error{closeLog}}, nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// database opens the SQLite file once and migrates the tables it backs.
func (a *app) database() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := gorm.Open(sqlite.Open(a.cfg.DatabasePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", a.cfg.DatabasePath, err)
	}
	if err := db.AutoMigrate(&domain.ConversationSession{}, &domain.VaultEntry{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	a.db = db
	return db, nil
}

func (a *app) sessionStore() (conversation.SessionStore, error) {
	if a.cfg.SessionBackend == "memory" {
		return conversation.NewMemoryStore(), nil
	}
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	return conversation.NewGormStore(db), nil
}

func (a *app) vaultService() (*vault.Service, error) {
	var store vaultrepo.ListStore
	switch a.cfg.VaultBackend {
	case "bolt":
		s, err := vaultrepo.NewBoltStore(a.cfg.VaultBoltPath)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		db, err := a.database()
		if err != nil {
			return nil, err
		}
		store = vaultrepo.NewGormStore(db)
	}
	a.closers = append(a.closers, store.Close)
	return vault.NewService(store, a.logger), nil
}

func (a *app) gateway() (*ai.Gateway, error) {
	cfg := &ai.Config{
		APIKey:      a.cfg.LLMAPIKey,
		BaseURL:     a.cfg.LLMBaseURL,
		Model:       a.cfg.LLMModel,
		Timeout:     a.cfg.LLMTimeout,
		Temperature: a.cfg.LLMTemperature,
	}
	if err := cfg.Validate(); err != nil {
		return nil, ai.NewConfigError(err.Error())
	}
	return ai.NewGateway(ai.NewOpenAIProvider(cfg), a.logger)
}

func (a *app) chatConfig() *chat.Config {
	cfg := chat.DefaultConfig()
	cfg.HistoryLimit = a.cfg.HistoryLimit
	cfg.SessionTTL = a.cfg.SessionTTL
	return cfg
}
