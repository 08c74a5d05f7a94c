package services

import (
	"context"
	"errors"
	"time"

	"resto-backend/internal/apperr"
	"resto-backend/internal/cache"
	"resto-backend/internal/models"
	"resto-backend/internal/period"
	"resto-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillService records sales. Totals and line prices are taken from the menu
// at the moment of sale, never from the client.
type BillService struct {
	bills  BillStore
	menu   MenuStore
	tables TableStore
	cache  *cache.Cache
	clock  timeutil.Clock
	logger *zap.Logger
}

func NewBillService(bills BillStore, menu MenuStore, tables TableStore, c *cache.Cache, clock timeutil.Clock, logger *zap.Logger) *BillService {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillService{bills: bills, menu: menu, tables: tables, cache: c, clock: clock, logger: logger}
}

// ListByDate returns the bills of one business day, newest first.
func (s *BillService) ListByDate(ctx context.Context, date string) ([]models.Bill, error) {
	if date == "" {
		date = timeutil.DateKey(s.clock())
	}
	r, err := period.Day(date, timeutil.Local)
	if err != nil {
		return nil, err
	}
	return s.bills.ListBillsBetween(ctx, r.Start, r.End)
}

func (s *BillService) Get(ctx context.Context, id uuid.UUID) (*models.Bill, error) {
	return s.bills.GetBill(ctx, id)
}

func (s *BillService) Create(ctx context.Context, req *models.CreateBillRequest) (*models.Bill, error) {
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.MenuItemID)
	}
	found, err := s.menu.GetMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	menu := make(map[uuid.UUID]models.MenuItem, len(found))
	for _, m := range found {
		menu[m.ID] = m
	}

	bill := &models.Bill{
		ID:        uuid.New(),
		CreatedAt: s.clock(),
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.DefaultPaymentType
	}
	bill.PaymentType = &paymentType

	total := decimal.Zero
	for _, it := range req.Items {
		m, ok := menu[it.MenuItemID]
		if !ok {
			return nil, apperr.Validation("menu item %s does not exist", it.MenuItemID)
		}
		if !m.IsAvailable {
			return nil, apperr.Validation("%s is not available", m.Name)
		}
		price := m.Price.Decimal()
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		bill.Items = append(bill.Items, models.BillItem{
			ID:         uuid.New(),
			BillID:     bill.ID,
			MenuItemID: m.ID,
			Quantity:   it.Quantity,
			Price:      models.AmountFrom(price),
		})
	}
	bill.TotalAmount = models.AmountFrom(total)

	if req.TableID != nil {
		table, err := s.tables.GetTable(ctx, *req.TableID)
		var notFound *apperr.NotFoundError
		if errors.As(err, &notFound) {
			return nil, apperr.Validation("table %s does not exist", *req.TableID)
		}
		if err != nil {
			return nil, err
		}
		bill.TableID = &table.ID
		bill.TableName = &table.Name
		bill.Section = &table.Section
	}

	if err := s.bills.CreateBill(ctx, bill); err != nil {
		return nil, err
	}
	s.cache.InvalidateAnalytics(ctx)
	s.logger.Info("bill created",
		zap.String("bill_id", bill.ID.String()),
		zap.String("total", string(bill.TotalAmount)),
		zap.Int("lines", len(bill.Items)),
	)
	return bill, nil
}
