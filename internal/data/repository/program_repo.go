package repository

import (
	"context"
	"fmt"

	"wellness-booking/internal/data/entity"
	"wellness-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProgramRepository interface {
	Create(ctx context.Context, program *entity.Program) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Program, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Program, error)
	FindAll(ctx context.Context, productType entity.ProductType, activeOnly bool, limit, offset int) ([]*entity.Program, error)
	Count(ctx context.Context, productType entity.ProductType, activeOnly bool) (int64, error)
	Update(ctx context.Context, program *entity.Program) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type programRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProgramRepository(db database.PgxIface, log *zap.Logger) ProgramRepository {
	return &programRepository{
		db:  db,
		log: log.With(zap.String("repository", "program")),
	}
}

const programColumns = `id, type, title, slug, description, price, duration_nights, is_active, created_at, updated_at`

func scanProgram(row pgx.Row) (*entity.Program, error) {
	var p entity.Program
	err := row.Scan(
		&p.ID,
		&p.Type,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.DurationNights,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *programRepository) Create(ctx context.Context, program *entity.Program) error {
	query := `
		INSERT INTO programs (id, type, title, slug, description, price, duration_nights, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		program.ID,
		program.Type,
		program.Title,
		program.Slug,
		program.Description,
		program.Price,
		program.DurationNights,
		program.IsActive,
		program.CreatedAt,
		program.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create program",
			zap.Error(err),
			zap.String("slug", program.Slug),
		)
		return fmt.Errorf("create program %s: %w", program.Slug, err)
	}

	return nil
}

func (r *programRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE id = $1`

	program, err := scanProgram(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find program by ID",
			zap.Error(err),
			zap.String("program_id", id.String()),
		)
		return nil, fmt.Errorf("find program by ID %s: %w", id.String(), err)
	}

	return program, nil
}

func (r *programRepository) FindBySlug(ctx context.Context, slug string) (*entity.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE slug = $1`

	program, err := scanProgram(r.db.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find program by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find program by slug %s: %w", slug, err)
	}

	return program, nil
}

func (r *programRepository) FindAll(ctx context.Context, productType entity.ProductType, activeOnly bool, limit, offset int) ([]*entity.Program, error) {
	query := `
		SELECT ` + programColumns + `
		FROM programs
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = false OR is_active = true)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, string(productType), activeOnly, limit, offset)
	if err != nil {
		r.log.Error("Failed to list programs", zap.Error(err))
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	var programs []*entity.Program
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			r.log.Error("Failed to scan program row", zap.Error(err))
			return nil, fmt.Errorf("scan program row: %w", err)
		}
		programs = append(programs, program)
	}

	return programs, nil
}

func (r *programRepository) Count(ctx context.Context, productType entity.ProductType, activeOnly bool) (int64, error) {
	query := `
		SELECT COUNT(*) FROM programs
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = false OR is_active = true)
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, string(productType), activeOnly).Scan(&count); err != nil {
		r.log.Error("Failed to count programs", zap.Error(err))
		return 0, fmt.Errorf("count programs: %w", err)
	}

	return count, nil
}

func (r *programRepository) Update(ctx context.Context, program *entity.Program) error {
	query := `
		UPDATE programs
		SET type = $2, title = $3, slug = $4, description = $5, price = $6,
		    duration_nights = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		program.ID,
		program.Type,
		program.Title,
		program.Slug,
		program.Description,
		program.Price,
		program.DurationNights,
		program.IsActive,
		program.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update program",
			zap.Error(err),
			zap.String("program_id", program.ID.String()),
		)
		return fmt.Errorf("update program %s: %w", program.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("program %s not found", program.ID.String())
	}

	return nil
}

func (r *programRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM programs WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete program",
			zap.Error(err),
			zap.String("program_id", id.String()),
		)
		return fmt.Errorf("delete program %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("program %s not found", id.String())
	}

	r.log.Info("Program deleted", zap.String("program_id", id.String()))
	return nil
}
