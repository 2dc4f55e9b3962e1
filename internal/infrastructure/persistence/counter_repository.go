package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pos/backend/internal/domain/numbering"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCounterRepository mints gapless document numbers from the embedded
// store. The read-increment-write runs inside a storage transaction and is
// additionally serialized by a per-key mutex, so concurrent mints for the
// same (scope, period, family) never observe the same value and a failed
// transaction leaves the stored value untouched.
type GormCounterRepository struct {
	db     *gorm.DB
	locale numbering.Locale

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGormCounterRepository creates a counter repository using the locale's
// calendar rules for period derivation
func NewGormCounterRepository(db *gorm.DB, locale numbering.Locale) *GormCounterRepository {
	return &GormCounterRepository{
		db:     db,
		locale: locale,
		locks:  make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex serializing mints for one composite key
func (r *GormCounterRepository) keyLock(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lock, ok := r.locks[key]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	r.locks[key] = lock
	return lock
}

// NextNumber atomically increments and returns the counter for the period
// containing the given instant. The first call for a new period creates the
// counter row and returns 1.
func (r *GormCounterRepository) NextNumber(ctx context.Context, scope string, family numbering.Family, at time.Time) (int64, error) {
	if scope == "" {
		return 0, shared.NewDomainError("INVALID_SCOPE", "Counter scope cannot be empty")
	}
	if !family.IsValid() {
		return 0, shared.NewDomainError("INVALID_FAMILY", "Unknown counter family")
	}

	periodKey := r.locale.PeriodKey(family, at)

	lock := r.keyLock(compositeKey(scope, periodKey, family))
	lock.Lock()
	defer lock.Unlock()

	var next int64
	err := dbFromContext(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter numbering.Counter
		err := tx.Where("scope = ? AND period_key = ? AND family = ?", scope, periodKey, family).
			First(&counter).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			counter = numbering.Counter{
				Scope:     scope,
				PeriodKey: periodKey,
				Family:    family,
				Value:     1,
			}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			counter.Value++
			if err := tx.Model(&numbering.Counter{}).
				Where("scope = ? AND period_key = ? AND family = ?", scope, periodKey, family).
				Update("value", counter.Value).Error; err != nil {
				return err
			}
		}
		next = counter.Value
		return nil
	})
	if err != nil {
		return 0, shared.NewStorageError("counter.next_number", err)
	}
	return next, nil
}

// Current returns the last issued value for the period containing the given
// instant, or 0 if the period has no counter row yet
func (r *GormCounterRepository) Current(ctx context.Context, scope string, family numbering.Family, at time.Time) (int64, error) {
	periodKey := r.locale.PeriodKey(family, at)

	var counter numbering.Counter
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("scope = ? AND period_key = ? AND family = ?", scope, periodKey, family).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, shared.NewStorageError("counter.current", err)
	}
	return counter.Value, nil
}

// compositeKey builds the lock key for one counter register
func compositeKey(scope, periodKey string, family numbering.Family) string {
	return fmt.Sprintf("%s|%s|%s", scope, periodKey, family)
}

// Ensure GormCounterRepository implements the interface
var _ numbering.CounterRepository = (*GormCounterRepository)(nil)
