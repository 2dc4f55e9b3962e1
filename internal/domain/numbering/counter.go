package numbering

import (
	"context"
	"time"
)

// Counter is one (scope, period, family) numbering register. A row is created
// implicitly on first use of a new period key and is never deleted: issued
// document numbers are legally significant and must remain reconstructible.
type Counter struct {
	Scope     string `gorm:"primaryKey;type:varchar(64)"`
	PeriodKey string `gorm:"primaryKey;type:varchar(16)"`
	Family    Family `gorm:"primaryKey;type:varchar(16)"`
	Value     int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Counter) TableName() string {
	return "document_counters"
}

// CounterRepository mints gapless document numbers. For a fixed
// (scope, period, family) the values returned by successive NextNumber calls
// are the strictly increasing run 1, 2, 3, ... with no gaps and no repeats.
// Implementations must serialize the read-increment-write per composite key
// and must not advance the stored value when they return an error, so the
// caller can always retry a failed mint.
type CounterRepository interface {
	// NextNumber atomically increments and returns the counter for the period
	// containing the given instant. Failures are shared.StorageError values.
	NextNumber(ctx context.Context, scope string, family Family, at time.Time) (int64, error)

	// Current returns the last issued value for the period containing the
	// given instant, or 0 if the period has no counter row yet.
	Current(ctx context.Context, scope string, family Family, at time.Time) (int64, error)
}

// Sequencer is the domain service that binds a shop scope and its locale to
// the counter store. Application services mint numbers through it instead of
// carrying the scope and locale around themselves.
type Sequencer struct {
	scope    string
	locale   Locale
	counters CounterRepository
}

// NewSequencer creates a Sequencer for one shop scope
func NewSequencer(scope string, locale Locale, counters CounterRepository) *Sequencer {
	return &Sequencer{
		scope:    scope,
		locale:   locale,
		counters: counters,
	}
}

// Next mints the next number for the family's period containing the instant
func (s *Sequencer) Next(ctx context.Context, family Family, at time.Time) (int64, error) {
	return s.counters.NextNumber(ctx, s.scope, family, at)
}

// PeriodKey exposes the locale's period derivation for callers that need the
// key itself, e.g. for display formatting alongside the minted number.
func (s *Sequencer) PeriodKey(family Family, at time.Time) string {
	return s.locale.PeriodKey(family, at)
}

// Locale returns the sequencer's calendar rules
func (s *Sequencer) Locale() Locale {
	return s.locale
}
