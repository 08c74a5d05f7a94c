package services

import (
	"context"
	"time"

	"resto-backend/internal/models"

	"github.com/google/uuid"
)

// BillStore reads and writes bills. Range queries are inclusive on both ends.
type BillStore interface {
	// ListBillsBetween returns bills created in [start, end], newest first.
	ListBillsBetween(ctx context.Context, start, end time.Time) ([]models.Bill, error)
	// ListItemsBetween returns the lines of bills created in [start, end]
	// joined with their menu item, in bill then line order.
	ListItemsBetween(ctx context.Context, start, end time.Time) ([]models.BillItemDetail, error)
	GetBill(ctx context.Context, id uuid.UUID) (*models.Bill, error)
	CreateBill(ctx context.Context, bill *models.Bill) error
	// ClearTableReference nulls table_id, table_name and section on every
	// bill of the table. It is idempotent.
	ClearTableReference(ctx context.Context, tableID uuid.UUID) (int64, error)
}

type TableStore interface {
	ListTables(ctx context.Context) ([]models.Table, error)
	GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error)
	CreateTable(ctx context.Context, table *models.Table) error
	UpdateTable(ctx context.Context, table *models.Table) error
	DeleteTable(ctx context.Context, id uuid.UUID) error
}

type MenuStore interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	GetMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}
