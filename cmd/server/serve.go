package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/stripe/stripe-go/v76"
	"github.com/yukikurage/saas-starter-api/internal/database"
	"github.com/yukikurage/saas-starter-api/internal/handlers"
	"github.com/yukikurage/saas-starter-api/internal/middleware"
	"github.com/yukikurage/saas-starter-api/internal/repository"
	"github.com/yukikurage/saas-starter-api/internal/services"
	"go.uber.org/zap"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if !skipMigrations {
			if err := database.Migrate(a.db, a.log); err != nil {
				return err
			}
		}

		return a.serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not migrate the database on start")
}

func (a *app) serve(ctx context.Context) error {
	gin.SetMode(a.cfg.GinMode)
	stripe.Key = a.cfg.Stripe.SecretKey

	sessionStore, err := middleware.NewSessionStore(a.cfg)
	if err != nil {
		return err
	}

	store := repository.NewStore(a.db)
	router := handlers.NewRouter(handlers.Deps{
		Logger:        a.log,
		DB:            a.db,
		SessionStore:  sessionStore,
		BaseURL:       a.cfg.BaseURL,
		ServiceName:   a.cfg.ServiceName,
		Auth:          services.NewAuthService(store),
		Users:         services.NewUserService(store),
		Organizations: services.NewOrganizationService(store),
		Memberships:   services.NewMembershipService(store),
		InviteLinks:   services.NewInviteLinkService(store),
		Billing:       services.NewBillingService(store, a.cfg.Stripe.WebhookSecret, a.log),
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", a.cfg.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
