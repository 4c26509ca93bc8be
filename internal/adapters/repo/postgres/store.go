package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/importador/internal/domain"
)

type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Begin(ctx context.Context) (domain.Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rowTx{tx: tx, customers: map[int]*domain.Customer{}}, nil
}

// rowTx scopes a single spreadsheet row. Staged entities and the customer
// identity map live here, in memory, until Flush; a rollback plus
// ClearTracking leaves nothing behind for the next row to trip over.
type rowTx struct {
	tx        *gorm.DB
	customers map[int]*domain.Customer
	staged    []any
}

func (t *rowTx) FindCustomer(id int) (*domain.Customer, error) {
	if c, ok := t.customers[id]; ok {
		return c, nil
	}
	var c domain.Customer
	err := t.tx.
		Preload("Addresses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	t.customers[id] = &c
	return &c, nil
}

func (t *rowTx) FindSale(id int) (*domain.Sale, error) {
	var s domain.Sale
	if err := t.tx.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (t *rowTx) StageCustomer(c *domain.Customer) {
	t.customers[c.ID] = c
	t.staged = append(t.staged, c)
}

func (t *rowTx) StageAddress(a *domain.Address) { t.staged = append(t.staged, a) }

func (t *rowTx) StageSale(s *domain.Sale) { t.staged = append(t.staged, s) }

// Flush writes staged entities in staging order (customer before its address
// before the sale). Associations are omitted: addresses are staged
// individually and letting gorm cascade them would insert duplicates.
func (t *rowTx) Flush() error {
	for _, e := range t.staged {
		if err := t.tx.Omit(clause.Associations).Create(e).Error; err != nil {
			return err
		}
	}
	t.staged = t.staged[:0]
	return nil
}

func (t *rowTx) Commit() error { return t.tx.Commit().Error }

func (t *rowTx) Rollback() error { return t.tx.Rollback().Error }

func (t *rowTx) ClearTracking() {
	t.staged = nil
	t.customers = map[int]*domain.Customer{}
}
