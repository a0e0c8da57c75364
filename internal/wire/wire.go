// internal/wire/wire.go
package wire

import (
	"net/http"

	"wellness-booking/internal/adaptor"
	"wellness-booking/internal/data/repository"
	"wellness-booking/internal/usecase"
	"wellness-booking/pkg/database"
	"wellness-booking/pkg/mailer"
	"wellness-booking/pkg/middleware"
	"wellness-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and the router
func Wiring(
	db database.PgxIface,
	repo *repository.Repository,
	notifier mailer.Notifier,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(db, repo, notifier, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireCatalog(r, handler.Catalog, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)
	wirePayment(r, handler.Payment, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
