package repositories

import (
	"context"
	"errors"

	"resto-backend/internal/apperr"
	"resto-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TableRepository struct {
	DB *pgxpool.Pool
}

func NewTableRepository(db *pgxpool.Pool) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) ListTables(ctx context.Context) ([]models.Table, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, section, status, created_at, updated_at
		FROM restaurant_tables
		ORDER BY section, name`)
	if err != nil {
		return nil, classify("list tables", err)
	}
	defer rows.Close()

	tables := []models.Table{}
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.Section, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, classify("scan table", err)
		}
		tables = append(tables, t)
	}
	return tables, classify("list tables", rows.Err())
}

func (r *TableRepository) GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	var t models.Table
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, section, status, created_at, updated_at
		FROM restaurant_tables WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Section, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Table", id.String())
	}
	if err != nil {
		return nil, classify("get table", err)
	}
	return &t, nil
}

func (r *TableRepository) CreateTable(ctx context.Context, t *models.Table) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO restaurant_tables (id, name, section, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Name, t.Section, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	return classify("create table", err)
}

// UpdateTable overwrites name, section and status; created_at is read back
func (r *TableRepository) UpdateTable(ctx context.Context, t *models.Table) error {
	err := r.DB.QueryRow(ctx, `
		UPDATE restaurant_tables
		SET name = $2, section = $3, status = $4, updated_at = $5
		WHERE id = $1
		RETURNING created_at`,
		t.ID, t.Name, t.Section, t.Status, t.UpdatedAt,
	).Scan(&t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Table", t.ID.String())
	}
	return classify("update table", err)
}

func (r *TableRepository) DeleteTable(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM restaurant_tables WHERE id = $1`, id)
	if err != nil {
		return classify("delete table", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Table", id.String())
	}
	return nil
}
