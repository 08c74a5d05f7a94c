package repositories

import (
	"context"
	"errors"
	"time"

	"resto-backend/internal/apperr"
	"resto-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BillRepository struct {
	DB *pgxpool.Pool
}

func NewBillRepository(db *pgxpool.Pool) *BillRepository {
	return &BillRepository{DB: db}
}

const billColumns = `id, created_at, total_amount::text, payment_type, table_id, table_name, section`

func scanBill(row pgx.Row) (models.Bill, error) {
	var (
		b      models.Bill
		amount string
	)
	err := row.Scan(&b.ID, &b.CreatedAt, &amount, &b.PaymentType, &b.TableID, &b.TableName, &b.Section)
	b.TotalAmount = models.Amount(amount)
	return b, err
}

// ListBillsBetween returns bills created in [start, end], newest first
func (r *BillRepository) ListBillsBetween(ctx context.Context, start, end time.Time) ([]models.Bill, error) {
	query := `SELECT ` + billColumns + `
		FROM bills
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, start, end)
	if err != nil {
		return nil, classify("list bills", err)
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, classify("scan bill", err)
		}
		bills = append(bills, b)
	}
	return bills, classify("list bills", rows.Err())
}

// ListItemsBetween joins bill lines with their bill and menu item
func (r *BillRepository) ListItemsBetween(ctx context.Context, start, end time.Time) ([]models.BillItemDetail, error) {
	query := `
		SELECT bi.bill_id, b.created_at, bi.menu_item_id, mi.name, mi.category,
		       bi.quantity, bi.price::text
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		JOIN menu_items mi ON mi.id = bi.menu_item_id
		WHERE b.created_at BETWEEN $1 AND $2
		ORDER BY b.created_at ASC, bi.bill_id, bi.position`

	rows, err := r.DB.Query(ctx, query, start, end)
	if err != nil {
		return nil, classify("list bill items", err)
	}
	defer rows.Close()

	items := []models.BillItemDetail{}
	for rows.Next() {
		var (
			d     models.BillItemDetail
			price string
		)
		if err := rows.Scan(&d.BillID, &d.BillCreatedAt, &d.MenuItemID, &d.MenuItemName,
			&d.Category, &d.Quantity, &price); err != nil {
			return nil, classify("scan bill item", err)
		}
		d.Price = models.Amount(price)
		items = append(items, d)
	}
	return items, classify("list bill items", rows.Err())
}

// GetBill loads one bill with its lines
func (r *BillRepository) GetBill(ctx context.Context, id uuid.UUID) (*models.Bill, error) {
	b, err := scanBill(r.DB.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Bill", id.String())
	}
	if err != nil {
		return nil, classify("get bill", err)
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, bill_id, menu_item_id, quantity, price::text
		FROM bill_items
		WHERE bill_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, classify("get bill items", err)
	}
	defer rows.Close()

	b.Items = []models.BillItem{}
	for rows.Next() {
		var (
			it    models.BillItem
			price string
		)
		if err := rows.Scan(&it.ID, &it.BillID, &it.MenuItemID, &it.Quantity, &price); err != nil {
			return nil, classify("scan bill item", err)
		}
		it.Price = models.Amount(price)
		b.Items = append(b.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("get bill items", err)
	}
	return &b, nil
}

// CreateBill inserts the bill and its lines in one transaction
func (r *BillRepository) CreateBill(ctx context.Context, bill *models.Bill) error {
	err := pgx.BeginFunc(ctx, r.DB, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO bills (id, created_at, total_amount, payment_type, table_id, table_name, section)
			VALUES ($1, $2, $3::numeric, $4, $5, $6, $7)`,
			bill.ID, bill.CreatedAt, string(bill.TotalAmount), bill.PaymentType,
			bill.TableID, bill.TableName, bill.Section,
		)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for i, it := range bill.Items {
			batch.Queue(`
				INSERT INTO bill_items (id, bill_id, menu_item_id, quantity, price, position)
				VALUES ($1, $2, $3, $4, $5::numeric, $6)`,
				it.ID, bill.ID, it.MenuItemID, it.Quantity, string(it.Price), i,
			)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	return classify("create bill", err)
}

// ClearTableReference detaches every bill from a table, keeping the bill itself
func (r *BillRepository) ClearTableReference(ctx context.Context, tableID uuid.UUID) (int64, error) {
	tag, err := r.DB.Exec(ctx, `
		UPDATE bills
		SET table_id = NULL, table_name = NULL, section = NULL
		WHERE table_id = $1`, tableID)
	if err != nil {
		return 0, classify("clear table reference", err)
	}
	return tag.RowsAffected(), nil
}
