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

type MenuItemRepository struct {
	DB *pgxpool.Pool
}

func NewMenuItemRepository(db *pgxpool.Pool) *MenuItemRepository {
	return &MenuItemRepository{DB: db}
}

const menuItemColumns = `id, name, category, price::text, is_available, created_at, updated_at`

func scanMenuItem(row pgx.Row) (models.MenuItem, error) {
	var (
		m     models.MenuItem
		price string
	)
	err := row.Scan(&m.ID, &m.Name, &m.Category, &price, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt)
	m.Price = models.Amount(price)
	return m, err
}

func (r *MenuItemRepository) queryItems(ctx context.Context, op, query string, args ...any) ([]models.MenuItem, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		items = append(items, m)
	}
	return items, classify(op, rows.Err())
}

func (r *MenuItemRepository) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return r.queryItems(ctx, "list menu items",
		`SELECT `+menuItemColumns+` FROM menu_items ORDER BY category, name`)
}

// GetMenuItemsByIDs returns the items that exist; missing ids are simply absent
func (r *MenuItemRepository) GetMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	return r.queryItems(ctx, "get menu items",
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = ANY($1::uuid[])`, keys)
}

func (r *MenuItemRepository) CreateMenuItem(ctx context.Context, m *models.MenuItem) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO menu_items (id, name, category, price, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)`,
		m.ID, m.Name, m.Category, string(m.Price), m.IsAvailable, m.CreatedAt, m.UpdatedAt,
	)
	return classify("create menu item", err)
}

func (r *MenuItemRepository) UpdateMenuItem(ctx context.Context, m *models.MenuItem) error {
	err := r.DB.QueryRow(ctx, `
		UPDATE menu_items
		SET name = $2, category = $3, price = $4::numeric, is_available = $5, updated_at = $6
		WHERE id = $1
		RETURNING created_at`,
		m.ID, m.Name, m.Category, string(m.Price), m.IsAvailable, m.UpdatedAt,
	).Scan(&m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Menu item", m.ID.String())
	}
	return classify("update menu item", err)
}

func (r *MenuItemRepository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return classify("delete menu item", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Menu item", id.String())
	}
	return nil
}
