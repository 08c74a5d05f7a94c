package services

import (
	"context"
	"time"

	"resto-backend/internal/cache"
	"resto-backend/internal/models"
	"resto-backend/internal/retry"
	"resto-backend/internal/timeutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TableNotifier receives table changes after they are stored.
type TableNotifier interface {
	Publish(ev models.TableEvent)
}

type TableService struct {
	tables   TableStore
	bills    BillStore
	gateway  *retry.Gateway
	notifier TableNotifier
	cache    *cache.Cache
	clock    timeutil.Clock
	logger   *zap.Logger
}

func NewTableService(
	tables TableStore,
	bills BillStore,
	gateway *retry.Gateway,
	notifier TableNotifier,
	c *cache.Cache,
	clock timeutil.Clock,
	logger *zap.Logger,
) *TableService {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TableService{
		tables:   tables,
		bills:    bills,
		gateway:  gateway,
		notifier: notifier,
		cache:    c,
		clock:    clock,
		logger:   logger,
	}
}

func (s *TableService) publish(kind string, id uuid.UUID, t *models.Table) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(models.TableEvent{
		Type:      kind,
		TableID:   id,
		Table:     t,
		Timestamp: s.clock().UnixMilli(),
	})
}

func (s *TableService) List(ctx context.Context) ([]models.Table, error) {
	return s.tables.ListTables(ctx)
}

func statusOrBlank(status string) models.TableStatus {
	if status == "" {
		return models.TableBlank
	}
	return models.TableStatus(status)
}

func (s *TableService) Create(ctx context.Context, req *models.TableRequest) (*models.Table, error) {
	now := s.clock()
	t := &models.Table{
		ID:        uuid.New(),
		Name:      req.Name,
		Section:   req.Section,
		Status:    statusOrBlank(req.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tables.CreateTable(ctx, t); err != nil {
		return nil, err
	}
	s.publish(models.TableCreated, t.ID, t)
	return t, nil
}

// Update replaces name, section and status. A missing status resets the
// table to blank.
func (s *TableService) Update(ctx context.Context, id uuid.UUID, req *models.TableRequest) (*models.Table, error) {
	t := &models.Table{
		ID:        id,
		Name:      req.Name,
		Section:   req.Section,
		Status:    statusOrBlank(req.Status),
		UpdatedAt: s.clock(),
	}
	err := s.gateway.Do(ctx, "tables.update", func(ctx context.Context) error {
		return s.tables.UpdateTable(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	s.publish(models.TableUpdated, t.ID, t)
	return t, nil
}

// Delete detaches the table's bills and then removes the table. The two
// steps are separate store calls; if the second fails the bills stay
// detached, and repeating the delete is safe.
func (s *TableService) Delete(ctx context.Context, id uuid.UUID) error {
	cleared, err := retry.Run(ctx, s.gateway, "bills.clear_table", func(ctx context.Context) (int64, error) {
		return s.bills.ClearTableReference(ctx, id)
	})
	if err != nil {
		return err
	}

	err = s.gateway.Do(ctx, "tables.delete", func(ctx context.Context) error {
		return s.tables.DeleteTable(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("table deleted", zap.String("table_id", id.String()), zap.Int64("bills_detached", cleared))
	if cleared > 0 {
		s.cache.InvalidateAnalytics(ctx)
	}
	s.publish(models.TableDeleted, id, nil)
	return nil
}
