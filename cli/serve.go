package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"furuth/controllers"
	"furuth/database"
	"furuth/models"
	"furuth/routes"
	"furuth/services"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront API",
		Long: `Start the storefront HTTP API.

On the first run against an empty store the sample catalog is seeded. Every
start checks once for a lost catalog; when one is suspected the server keeps
running and the admin can restore via the API or "furuth restore".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rootOpts)
		},
	}
}

func serve(ctx context.Context, opts *RootOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	seed, err := services.LoadSeed(a.cfg.SeedFile)
	if err != nil {
		return err
	}
	if _, err := a.catalog.SeedIfFirstRun(ctx, seed); err != nil {
		log.Printf("⚠️  Failed to seed sample catalog: %v", err)
	}

	report, err := a.catalog.DetectLoss(ctx, false, nil)
	if err != nil {
		log.Printf("⚠️  Data loss check failed: %v", err)
	} else if report.Suspected {
		log.Printf("⚠️  Product catalog is empty but a backup of %d products from %s exists. Restore it with `furuth restore` or POST /api/admin/recovery/restore",
			report.BackupCount, report.BackupTime.Format(time.RFC1123))
	}

	secret := a.cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Println("⚠️  JWT_SECRET not set, using a random secret; admin tokens will not survive a restart")
	}
	if a.cfg.AdminPasswordHash == "" {
		log.Println("⚠️  ADMIN_PASSWORD_HASH not set, admin login is disabled (see `furuth hash-password`)")
	}

	h := &controllers.Handler{
		Catalog: a.catalog,
		Ledger:  a.ledger,
		Prefs:   services.NewPreferences(a.storage),
		Admin: services.NewAdminAuth(
			models.Admin{Username: a.cfg.AdminUsername, PasswordHash: a.cfg.AdminPasswordHash},
			database.NewMemoryStorage(0),
		),
		Money:      services.NewMoney(a.cfg.ExchangeRate),
		JWTSecret:  []byte(secret),
		SessionTTL: a.cfg.SessionTTL,
	}

	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(routes.CORS(a.cfg.AllowedOrigins))
	routes.RegisterRoutes(r, h)

	srv := &http.Server{Addr: ":" + a.cfg.Port, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Furuth API listening on :%s", a.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
