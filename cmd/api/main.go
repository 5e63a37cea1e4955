package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/savr/internal/activity"
	activityStore "github.com/MrJamesThe3rd/savr/internal/activity/store"
	"github.com/MrJamesThe3rd/savr/internal/analytics"
	"github.com/MrJamesThe3rd/savr/internal/auth"
	"github.com/MrJamesThe3rd/savr/internal/config"
	"github.com/MrJamesThe3rd/savr/internal/database"
	"github.com/MrJamesThe3rd/savr/internal/debt"
	debtStore "github.com/MrJamesThe3rd/savr/internal/debt/store"
	"github.com/MrJamesThe3rd/savr/internal/goal"
	goalStore "github.com/MrJamesThe3rd/savr/internal/goal/store"
	savrHttp "github.com/MrJamesThe3rd/savr/internal/http"
	activityHandler "github.com/MrJamesThe3rd/savr/internal/http/activity"
	analyticsHandler "github.com/MrJamesThe3rd/savr/internal/http/analytics"
	debtHandler "github.com/MrJamesThe3rd/savr/internal/http/debt"
	goalHandler "github.com/MrJamesThe3rd/savr/internal/http/goal"
	importHandler "github.com/MrJamesThe3rd/savr/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/savr/internal/http/matching"
	txHandler "github.com/MrJamesThe3rd/savr/internal/http/transaction"
	walletHandler "github.com/MrJamesThe3rd/savr/internal/http/wallet"
	"github.com/MrJamesThe3rd/savr/internal/importer"
	"github.com/MrJamesThe3rd/savr/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/savr/internal/matching/store"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	txStore "github.com/MrJamesThe3rd/savr/internal/transaction/store"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
	walletStore "github.com/MrJamesThe3rd/savr/internal/wallet/store"
)

func main() {
	issueFor := flag.String("issue-token", "", "print a bearer token for the given user id and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	authenticator := auth.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	if *issueFor != "" {
		if err := printToken(authenticator, *issueFor); err != nil {
			slog.Error("failed to issue token", "error", err)
			os.Exit(1)
		}

		return
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	var (
		walletService      = wallet.NewService(walletStore.New(db))
		transactionService = transaction.NewService(txStore.New(db), loc)
		goalService        = goal.NewService(goalStore.New(db))
		debtService        = debt.NewService(debtStore.New(db))
		activityService    = activity.NewService(activityStore.New(db))
		matchingService    = matching.NewService(matchingStore.New(db))
		importService      = importer.NewService(loc, matchingService)
		analyticsService   = analytics.NewService(
			analytics.NewSource(walletService, transactionService, goalService, debtService),
			loc,
			cfg.Analytics.TopCategories,
		)
	)

	router := savrHttp.New(savrHttp.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		Timeout:      cfg.Server.Timeout,
		Authenticate: authenticator.Middleware,
	}, savrHttp.Handlers{
		Wallets:      walletHandler.NewHandler(walletService),
		Transactions: txHandler.NewHandler(transactionService, loc),
		Import:       importHandler.NewHandler(importService, transactionService),
		Goals:        goalHandler.NewHandler(goalService, analyticsService),
		Debts:        debtHandler.NewHandler(debtService),
		Activities:   activityHandler.NewHandler(activityService),
		Matching:     matchingHandler.NewHandler(matchingService),
		Analytics:    analyticsHandler.NewHandler(analyticsService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "timezone", loc.String())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func printToken(a *auth.Authenticator, rawUserID string) error {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return fmt.Errorf("parsing user id: %w", err)
	}

	token, err := a.Issue(userID)
	if err != nil {
		return err
	}

	fmt.Println(token)

	return nil
}
