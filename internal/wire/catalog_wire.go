package wire

import (
	"wellness-booking/internal/adaptor"
	"wellness-booking/internal/data/repository"
	"wellness-booking/pkg/middleware"
	"wellness-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/programs - Browse bookable programs
	r.Get("/api/programs", catalogHandler.ListPrograms)

	// GET /api/programs/{idOrSlug} - Program details by ID or slug
	r.Get("/api/programs/{idOrSlug}", catalogHandler.GetProgram)

	// GET /api/hotels - Browse partner hotels
	r.Get("/api/hotels", catalogHandler.ListHotels)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/programs", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// POST /api/admin/programs - Create program
		r.Post("/", catalogHandler.CreateProgram)

		// PUT /api/admin/programs/{id} - Update program
		r.Put("/{id}", catalogHandler.UpdateProgram)

		// DELETE /api/admin/programs/{id} - Remove program
		r.Delete("/{id}", catalogHandler.DeleteProgram)
	})

	r.Route("/api/admin/hotels", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// POST /api/admin/hotels - Create partner hotel
		r.Post("/", catalogHandler.CreateHotel)

		// PUT /api/admin/hotels/{id} - Update partner hotel
		r.Put("/{id}", catalogHandler.UpdateHotel)

		// DELETE /api/admin/hotels/{id} - Remove partner hotel
		r.Delete("/{id}", catalogHandler.DeleteHotel)
	})
}
