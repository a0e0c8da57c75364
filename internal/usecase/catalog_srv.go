package usecase

import (
	"context"
	"fmt"
	"time"

	"wellness-booking/internal/data/entity"
	"wellness-booking/internal/data/repository"
	"wellness-booking/internal/dto/request"
	"wellness-booking/internal/dto/response"
	"wellness-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages the bookable programs and partner hotels.
type CatalogService interface {
	ListPrograms(ctx context.Context, productType string, activeOnly bool, page request.PaginatedRequest) (*response.PaginatedResponse[response.ProgramResponse], error)
	GetProgram(ctx context.Context, idOrSlug string) (*response.ProgramResponse, error)
	CreateProgram(ctx context.Context, req *request.ProgramRequest) (*response.ProgramResponse, error)
	UpdateProgram(ctx context.Context, programID string, req *request.ProgramRequest) (*response.ProgramResponse, error)
	DeleteProgram(ctx context.Context, programID string) error

	ListHotels(ctx context.Context, activeOnly bool) ([]response.HotelResponse, error)
	CreateHotel(ctx context.Context, req *request.HotelRequest) (*response.HotelResponse, error)
	UpdateHotel(ctx context.Context, hotelID string, req *request.HotelRequest) (*response.HotelResponse, error)
	DeleteHotel(ctx context.Context, hotelID string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

// ==================== PROGRAMS ====================

func (s *catalogService) ListPrograms(ctx context.Context, productType string, activeOnly bool, page request.PaginatedRequest) (*response.PaginatedResponse[response.ProgramResponse], error) {
	pt := entity.ProductType(productType)
	if productType != "" && !pt.Valid() {
		return nil, fmt.Errorf("invalid product type %q", productType)
	}

	programs, err := s.repo.Program.FindAll(ctx, pt, activeOnly, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}

	total, err := s.repo.Program.Count(ctx, pt, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("count programs: %w", err)
	}

	programResponses := make([]response.ProgramResponse, len(programs))
	for i, program := range programs {
		programResponses[i] = response.ProgramToResponse(program)
	}

	return response.NewPaginatedResponse(programResponses, page.Page, page.PerPage, total), nil
}

// GetProgram resolves either a UUID or a slug, so public links can use
// readable URLs.
func (s *catalogService) GetProgram(ctx context.Context, idOrSlug string) (*response.ProgramResponse, error) {
	var program *entity.Program
	var err error

	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		program, err = s.repo.Program.FindByID(ctx, id)
	} else {
		program, err = s.repo.Program.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("find program %s: %w", idOrSlug, err)
	}
	if program == nil {
		return nil, fmt.Errorf("program %s not found", idOrSlug)
	}

	resp := response.ProgramToResponse(program)
	return &resp, nil
}

func (s *catalogService) CreateProgram(ctx context.Context, req *request.ProgramRequest) (*response.ProgramResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	slug := utils.Slugify(req.Title)
	if existing, err := s.repo.Program.FindBySlug(ctx, slug); err == nil && existing != nil {
		return nil, fmt.Errorf("program with slug %s already exists", slug)
	}

	now := time.Now()
	program := &entity.Program{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Type:           entity.ProductType(req.Type),
		Title:          req.Title,
		Slug:           slug,
		Description:    req.Description,
		Price:          req.Price,
		DurationNights: req.DurationNights,
		IsActive:       true,
	}
	if req.IsActive != nil {
		program.IsActive = *req.IsActive
	}

	if err := s.repo.Program.Create(ctx, program); err != nil {
		return nil, err
	}

	s.log.Info("Program created",
		zap.String("program_id", program.ID.String()),
		zap.String("slug", program.Slug),
		zap.String("type", string(program.Type)),
	)

	resp := response.ProgramToResponse(program)
	return &resp, nil
}

func (s *catalogService) UpdateProgram(ctx context.Context, programID string, req *request.ProgramRequest) (*response.ProgramResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(programID)
	if err != nil {
		return nil, fmt.Errorf("invalid program ID format %s: %w", programID, err)
	}

	program, err := s.repo.Program.FindByID(ctx, id)
	if err != nil || program == nil {
		return nil, fmt.Errorf("program %s not found", programID)
	}

	program.Type = entity.ProductType(req.Type)
	program.Title = req.Title
	program.Slug = utils.Slugify(req.Title)
	program.Description = req.Description
	program.Price = req.Price
	program.DurationNights = req.DurationNights
	if req.IsActive != nil {
		program.IsActive = *req.IsActive
	}
	program.UpdatedAt = time.Now()

	if err := s.repo.Program.Update(ctx, program); err != nil {
		return nil, err
	}

	s.log.Info("Program updated",
		zap.String("program_id", program.ID.String()),
		zap.String("slug", program.Slug),
	)

	resp := response.ProgramToResponse(program)
	return &resp, nil
}

func (s *catalogService) DeleteProgram(ctx context.Context, programID string) error {
	id, err := uuid.Parse(programID)
	if err != nil {
		return fmt.Errorf("invalid program ID format %s: %w", programID, err)
	}

	if err := s.repo.Program.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Program deleted", zap.String("program_id", programID))
	return nil
}

// ==================== HOTELS ====================

func (s *catalogService) ListHotels(ctx context.Context, activeOnly bool) ([]response.HotelResponse, error) {
	hotels, err := s.repo.Hotel.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}

	hotelResponses := make([]response.HotelResponse, len(hotels))
	for i, hotel := range hotels {
		hotelResponses[i] = response.HotelToResponse(hotel)
	}

	return hotelResponses, nil
}

func (s *catalogService) CreateHotel(ctx context.Context, req *request.HotelRequest) (*response.HotelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	hotel := &entity.PartnerHotel{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          req.Name,
		Location:      req.Location,
		StarRating:    req.StarRating,
		PricePerNight: req.PricePerNight,
		IsActive:      true,
	}
	if req.IsActive != nil {
		hotel.IsActive = *req.IsActive
	}

	if err := s.repo.Hotel.Create(ctx, hotel); err != nil {
		return nil, err
	}

	s.log.Info("Hotel created",
		zap.String("hotel_id", hotel.ID.String()),
		zap.String("name", hotel.Name),
	)

	resp := response.HotelToResponse(hotel)
	return &resp, nil
}

func (s *catalogService) UpdateHotel(ctx context.Context, hotelID string, req *request.HotelRequest) (*response.HotelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(hotelID)
	if err != nil {
		return nil, fmt.Errorf("invalid hotel ID format %s: %w", hotelID, err)
	}

	hotel, err := s.repo.Hotel.FindByID(ctx, id)
	if err != nil || hotel == nil {
		return nil, fmt.Errorf("hotel %s not found", hotelID)
	}

	hotel.Name = req.Name
	hotel.Location = req.Location
	hotel.StarRating = req.StarRating
	hotel.PricePerNight = req.PricePerNight
	if req.IsActive != nil {
		hotel.IsActive = *req.IsActive
	}
	hotel.UpdatedAt = time.Now()

	if err := s.repo.Hotel.Update(ctx, hotel); err != nil {
		return nil, err
	}

	s.log.Info("Hotel updated", zap.String("hotel_id", hotel.ID.String()))

	resp := response.HotelToResponse(hotel)
	return &resp, nil
}

func (s *catalogService) DeleteHotel(ctx context.Context, hotelID string) error {
	id, err := uuid.Parse(hotelID)
	if err != nil {
		return fmt.Errorf("invalid hotel ID format %s: %w", hotelID, err)
	}

	if err := s.repo.Hotel.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Hotel deleted", zap.String("hotel_id", hotelID))
	return nil
}
