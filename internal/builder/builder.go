package builder

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/scopeguard/internal/api"
	authapi "github.com/futig/scopeguard/internal/api/auth"
	dashboardapi "github.com/futig/scopeguard/internal/api/dashboard"
	"github.com/futig/scopeguard/internal/api/render"
	settingsapi "github.com/futig/scopeguard/internal/api/settings"
	"github.com/futig/scopeguard/internal/config"
	"github.com/futig/scopeguard/internal/integration/gemini"
	"github.com/futig/scopeguard/internal/integration/supabase"
	"github.com/futig/scopeguard/internal/pkg/formatter"
	"github.com/futig/scopeguard/internal/pkg/pdftext"
	"github.com/futig/scopeguard/internal/pkg/validator"
	"github.com/futig/scopeguard/internal/repository"
	"github.com/futig/scopeguard/internal/session"
	"github.com/futig/scopeguard/internal/usecase/account"
	"github.com/futig/scopeguard/internal/usecase/chat"
	"github.com/futig/scopeguard/internal/usecase/defense"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ConfigError marks failures that happen before a logger exists
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("secrets missing or invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("setup logger: %w", err)}
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("history_backend", cfg.HistoryBackend),
		zap.Bool("mocks", cfg.EnableMocks),
	)

	// Initialize external service connectors (with mock support)
	var authConnector account.AuthConnector
	var historyStore chat.HistoryStore
	var completionConnector defense.CompletionConnector
	var db *pgxpool.Pool

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		authConnector = supabase.NewMockAuthConnector(logger)
		historyStore = supabase.NewMockHistoryConnector(logger)
		completionConnector = gemini.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		authConnector = supabase.NewAuthConnector(cfg.SupabaseCfg, logger)
		completionConnector = gemini.NewConnector(cfg.GeminiCfg, logger)

		switch cfg.HistoryBackend {
		case config.HistoryBackendPostgres:
			db, err = setupDatabase(ctx, cfg, logger)
			if err != nil {
				return nil, fmt.Errorf("setup database: %w", err)
			}
			historyStore = repository.NewChatHistoryPostgres(db)
		default:
			historyStore = supabase.NewHistoryConnector(cfg.SupabaseCfg, logger)
		}
	}
	logger.Info("Connectors initialized")

	inputValidator := validator.NewValidator(cfg.FileUploadCfg)

	// Initialize use cases
	chatUC := chat.NewUsecase(historyStore, logger)
	defenseUC := defense.NewUsecase(
		completionConnector,
		pdftext.NewExtractor(),
		chatUC,
		inputValidator,
		logger,
	)
	accountUC := account.NewUsecase(
		authConnector,
		inputValidator,
		cfg.AccountDeletionPause,
		logger,
	)
	logger.Info("Use cases initialized")

	renderer, err := render.NewRenderer(chatUC)
	if err != nil {
		closePool(db)
		return nil, fmt.Errorf("setup renderer: %w", err)
	}

	// Setup API handlers
	handlers := api.Handlers{
		Auth:      authapi.NewHandler(accountUC, renderer),
		Dashboard: dashboardapi.NewHandler(chatUC, defenseUC, formatter.NewFactory(), renderer, cfg.FileUploadCfg.MaxUploadSize),
		Settings:  settingsapi.NewHandler(accountUC, renderer),
		Denied:    renderer.Denied(),
	}
	logger.Info("API handlers initialized")

	sessions := session.NewManager(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval)

	router := api.SetupRouter(handlers, sessions, cfg.SessionCfg, cfg.RequestTimeout, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

func closePool(db *pgxpool.Pool) {
	if db != nil {
		db.Close()
	}
}
