package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/adapters/primary/tui"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/adapters/secondary/alert"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/adapters/secondary/rest"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/adapters/secondary/sqlite"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/adapters/secondary/ws"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/auth"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/config"
	apperrors "github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/errors"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/notify"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/ports"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger. Logs go to a file: the terminal
	// belongs to the UI.
	logFile, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.Logging.File, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      logFile,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting console",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize REST Client
	client, err := rest.NewClient(rest.Config{
		BaseURL:           cfg.Backend.APIURL,
		Timeout:           cfg.Backend.HTTPTimeout,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
	}, logger)
	if err != nil {
		logger.Error("failed to create rest client", "error", err)
		os.Exit(1)
	}

	// 4. Establish Session: a saved token if it still has life in it,
	// otherwise a fresh login with the configured credentials.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	userID, err := establishSession(ctx, client, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to establish session", "error", err)
		os.Exit(1)
	}

	// 5. Initialize Local Archive (optional)
	var archive ports.NotificationArchive
	if cfg.Archive.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Archive.Path), 0o755); err != nil {
			logger.Error("failed to create archive directory", "error", err)
			os.Exit(1)
		}
		a, err := sqlite.NewArchive(cfg.Archive.Path, logger)
		if err != nil {
			logger.Error("failed to open notification archive", "error", err)
			os.Exit(1)
		}
		defer a.Close()
		archive = a
	}

	// 6. Initialize Alerter
	var alerter ports.Alerter = alert.Silent{}
	if cfg.Alerts.Sound || cfg.Alerts.Desktop {
		alerter = alert.NewBeeper(cfg.Alerts.Desktop, logger)
	}

	// 7. Wire the Notification Pipeline
	var program *tea.Program

	storeOpts := []notify.Option{
		notify.WithAlerter(alerter),
		notify.WithChangeHook(func() {
			if program != nil {
				program.Send(tui.StoreChangedMsg{})
			}
		}),
	}
	if archive != nil {
		storeOpts = append(storeOpts, notify.WithArchive(archive))
	}
	store := notify.NewStore(client, logger, storeOpts...)

	manager := ws.NewManager(cfg.WebSocket.URL, logger,
		ws.WithReconnectDelay(cfg.WebSocket.ReconnectDelay),
		ws.WithBufferSizes(cfg.WebSocket.ReadBufferSize, cfg.WebSocket.WriteBufferSize),
	)
	manager.AddListener(store.OnPush)
	defer manager.Disconnect()

	// A failed dial is not fatal: the manager keeps retrying while the
	// token is held.
	if _, err := manager.Connect(client.Token()); err != nil {
		logger.Warn("initial websocket connect failed, retrying in background", "error", err)
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := store.LoadInitial(loadCtx, userID); err != nil {
		logger.Warn("failed to load unread notifications", "error", err)
	}
	loadCancel()

	// 8. Run the UI
	logout := func(ctx context.Context) error {
		manager.Disconnect()
		if err := auth.ClearSession(); err != nil {
			logger.Warn("failed to clear saved session", "error", err)
		}
		return client.Logout(ctx)
	}

	program = tea.NewProgram(
		tui.New(store, manager, archive, logger, tui.WithLogout(logout)),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		logger.Error("console error", "error", err)
		os.Exit(1)
	}

	logger.Info("console shutdown complete")
}

// establishSession reuses a saved token when it is still valid, falling back
// to a credential login. It returns the session's user id.
func establishSession(ctx context.Context, client *rest.Client, cfg *config.Config, logger *slog.Logger) (int64, error) {
	token, email, err := auth.LoadSession()
	switch {
	case err == nil && token != "":
		claims, err := auth.InspectToken(token)
		if err == nil && !auth.ExpiresWithin(claims, time.Minute) {
			client.SetToken(token)
			logger.Info("resumed saved session", "user_id", claims.UserID, "user_email", email)
			return claims.UserID, nil
		}
		logger.Info("saved session expired, logging in again", "user_email", email)
	case errors.Is(err, apperrors.ErrNoSession):
		// First run, nothing saved yet.
	case err != nil:
		logger.Warn("failed to load saved session", "error", err)
	}

	tok, err := client.Login(ctx, cfg.Console.Email, cfg.Console.Password)
	if err != nil {
		return 0, err
	}

	me, err := client.Me(ctx)
	if err != nil {
		return 0, err
	}
	if !me.CanAssign() {
		logger.Warn("account has no admin privileges, technician and fleet views will be rejected by the backend",
			"user_email", me.Email)
	}

	if err := auth.SaveSession(tok.AccessToken, tok.UserEmail); err != nil {
		logger.Warn("failed to save session to keyring", "error", err)
	}
	return me.ID, nil
}
