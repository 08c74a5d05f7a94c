// Package memory is an in-process implementation of the record store, used by
// tests and by the server's demo mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"resto-backend/internal/apperr"
	"resto-backend/internal/models"

	"github.com/google/uuid"
)

// Store holds bills, tables and menu items behind one mutex. Returned values
// are copies; callers never share memory with the store.
type Store struct {
	mu     sync.RWMutex
	bills  map[uuid.UUID]models.Bill
	tables map[uuid.UUID]models.Table
	menu   map[uuid.UUID]models.MenuItem
}

func New() *Store {
	return &Store{
		bills:  make(map[uuid.UUID]models.Bill),
		tables: make(map[uuid.UUID]models.Table),
		menu:   make(map[uuid.UUID]models.MenuItem),
	}
}

// Ping always succeeds; the store lives in process.
func (s *Store) Ping(context.Context) error { return nil }

func cloneBill(b models.Bill) models.Bill {
	if b.Items != nil {
		b.Items = append([]models.BillItem(nil), b.Items...)
	}
	return b
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func (s *Store) ListBillsBetween(_ context.Context, start, end time.Time) ([]models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Bill{}
	for _, b := range s.bills {
		if inRange(b.CreatedAt, start, end) {
			b.Items = nil
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) ListItemsBetween(_ context.Context, start, end time.Time) ([]models.BillItemDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bills []models.Bill
	for _, b := range s.bills {
		if inRange(b.CreatedAt, start, end) {
			bills = append(bills, b)
		}
	}
	sort.Slice(bills, func(i, j int) bool {
		if !bills[i].CreatedAt.Equal(bills[j].CreatedAt) {
			return bills[i].CreatedAt.Before(bills[j].CreatedAt)
		}
		return bills[i].ID.String() < bills[j].ID.String()
	})

	out := []models.BillItemDetail{}
	for _, b := range bills {
		for _, it := range b.Items {
			mi := s.menu[it.MenuItemID]
			out = append(out, models.BillItemDetail{
				BillID:        b.ID,
				BillCreatedAt: b.CreatedAt,
				MenuItemID:    it.MenuItemID,
				MenuItemName:  mi.Name,
				Category:      mi.Category,
				Quantity:      it.Quantity,
				Price:         it.Price,
			})
		}
	}
	return out, nil
}

func (s *Store) GetBill(_ context.Context, id uuid.UUID) (*models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bills[id]
	if !ok {
		return nil, apperr.NotFound("Bill", id.String())
	}
	b = cloneBill(b)
	if b.Items == nil {
		b.Items = []models.BillItem{}
	}
	return &b, nil
}

func (s *Store) CreateBill(_ context.Context, bill *models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range bill.Items {
		if _, ok := s.menu[it.MenuItemID]; !ok {
			return apperr.Validation("menu item %s does not exist", it.MenuItemID)
		}
	}
	if bill.TableID != nil {
		if _, ok := s.tables[*bill.TableID]; !ok {
			return apperr.Validation("table %s does not exist", *bill.TableID)
		}
	}
	s.bills[bill.ID] = cloneBill(*bill)
	return nil
}

func (s *Store) ClearTableReference(_ context.Context, tableID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, b := range s.bills {
		if b.TableID != nil && *b.TableID == tableID {
			b.TableID, b.TableName, b.Section = nil, nil, nil
			s.bills[id] = b
			n++
		}
	}
	return n, nil
}

func (s *Store) ListTables(_ context.Context) ([]models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) GetTable(_ context.Context, id uuid.UUID) (*models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[id]
	if !ok {
		return nil, apperr.NotFound("Table", id.String())
	}
	return &t, nil
}

func (s *Store) CreateTable(_ context.Context, t *models.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.ID] = *t
	return nil
}

func (s *Store) UpdateTable(_ context.Context, t *models.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tables[t.ID]
	if !ok {
		return apperr.NotFound("Table", t.ID.String())
	}
	t.CreatedAt = existing.CreatedAt
	s.tables[t.ID] = *t
	return nil
}

// DeleteTable mirrors the database's ON DELETE SET NULL on bills.table_id.
func (s *Store) DeleteTable(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[id]; !ok {
		return apperr.NotFound("Table", id.String())
	}
	delete(s.tables, id)
	for bid, b := range s.bills {
		if b.TableID != nil && *b.TableID == id {
			b.TableID = nil
			s.bills[bid] = b
		}
	}
	return nil
}

func (s *Store) ListMenuItems(_ context.Context) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MenuItem, 0, len(s.menu))
	for _, m := range s.menu {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) GetMenuItemsByIDs(_ context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.MenuItem{}
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if m, ok := s.menu[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) CreateMenuItem(_ context.Context, m *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu[m.ID] = *m
	return nil
}

func (s *Store) UpdateMenuItem(_ context.Context, m *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.menu[m.ID]
	if !ok {
		return apperr.NotFound("Menu item", m.ID.String())
	}
	m.CreatedAt = existing.CreatedAt
	s.menu[m.ID] = *m
	return nil
}

func (s *Store) DeleteMenuItem(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menu[id]; !ok {
		return apperr.NotFound("Menu item", id.String())
	}
	for _, b := range s.bills {
		for _, it := range b.Items {
			if it.MenuItemID == id {
				return apperr.Validation("record is still referenced: menu item %s appears on bills", id)
			}
		}
	}
	delete(s.menu, id)
	return nil
}
