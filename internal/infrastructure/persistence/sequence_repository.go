package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/orders"
)

// GormSequenceRepository hands out gap-free increasing numbers backed by a
// sequences table. The upsert takes a row lock, so concurrent callers
// serialize on the sequence name and no number is issued twice.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next returns the next number for the named sequence. Call it inside the
// transaction that uses the number so a rollback releases it.
func (r *GormSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequences (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value`, name).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

var _ orders.SequenceRepository = (*GormSequenceRepository)(nil)
