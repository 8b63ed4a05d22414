package pageselect

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrResultSetChanged is returned when the result set holds fewer rows than
// the selection refers to.
var ErrResultSetChanged = errors.New("result set changed")

// Resolvable is a selection holding placeholders. *Tracker implements it.
type Resolvable[ID comparable] interface {
	PlaceholderPositions() []int
	Resolve(ids map[int]ID) int
}

var _ Resolvable[string] = (*Tracker[struct{}, string])(nil)

// Window is a contiguous range of global positions read with one query.
type Window struct {
	Offset int
	Limit  int
}

// Apply applies the window as LIMIT/OFFSET to a gorm query.
func (w Window) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(w.Offset).Limit(w.Limit)
}

// Resolver looks up the identifiers at given global positions of a result
// set. The result set is the gorm query passed to Lookup/Resolve ordered by
// the resolver's sort, which must match the ordering the table is paginated
// with; otherwise positions point at different rows.
type Resolver[ID comparable] struct {
	idColumn  string
	batchSize int
	sort      Orderings
	logger    *zap.Logger
}

func NewResolver[ID comparable]() *Resolver[ID] {
	return new(Resolver[ID])
}

// WithIDColumn sets the column holding the stable identifier. Defaults to "id".
func (r *Resolver[ID]) WithIDColumn(column string) *Resolver[ID] {
	if r == nil {
		r = new(Resolver[ID])
	}

	r.idColumn = column

	return r
}

// WithBatchSize sets the maximum number of rows read per query. Values above
// MaxBatchSize are clamped; zero or negative restores the MaxBatchSize default.
func (r *Resolver[ID]) WithBatchSize(batchSize int) *Resolver[ID] {
	if r == nil {
		r = new(Resolver[ID])
	}

	r.batchSize = lo.Ternary(batchSize <= 0, MaxBatchSize, NormalizePageSizeMax(batchSize, MaxBatchSize))

	return r
}

// WithSubstitutedSort resets previous orderings and applies the provided ones.
func (r *Resolver[ID]) WithSubstitutedSort(orderBy ...OrderBy) *Resolver[ID] {
	if r == nil {
		r = new(Resolver[ID])
	}

	r.sort = nil

	return r.WithSort(orderBy...)
}

// WithSort appends orderings. A column already present is moved to the end
// with the new direction.
func (r *Resolver[ID]) WithSort(orderBy ...OrderBy) *Resolver[ID] {
	if r == nil {
		r = new(Resolver[ID])
	}

	for _, o := range orderBy {
		r.sort = slices.DeleteFunc(r.sort, func(processed OrderBy) bool {
			return processed.Column == o.Column
		})
		r.sort = append(r.sort, o)
	}

	return r
}

func (r *Resolver[ID]) WithLogger(logger *zap.Logger) *Resolver[ID] {
	if r == nil {
		r = new(Resolver[ID])
	}

	r.logger = logger

	return r
}

// GetSort returns orderings that will be applied to the result set.
func (r *Resolver[ID]) GetSort() Orderings {
	if r == nil {
		return nil
	}

	return r.sort
}

// GetIDColumn returns the identifier column, "id" unless configured.
func (r *Resolver[ID]) GetIDColumn() string {
	if r == nil || r.idColumn == "" {
		return "id"
	}

	return r.idColumn
}

// GetBatchSize returns the maximum number of rows read per query.
func (r *Resolver[ID]) GetBatchSize() int {
	if r == nil || r.batchSize <= 0 {
		return MaxBatchSize
	}

	return r.batchSize
}

// Windows groups positions into contiguous runs of at most GetBatchSize
// positions each. Negative and duplicate positions are dropped.
//
// Example, batch size 3: [0 1 2 3 7 9 10] -> [{0 3} {3 1} {7 1} {9 2}].
func (r *Resolver[ID]) Windows(positions []int) []Window {
	sorted := lo.Uniq(lo.Filter(positions, func(p int, _ int) bool { return p >= 0 }))
	slices.Sort(sorted)

	batchSize := r.GetBatchSize()
	var ret []Window
	for _, p := range sorted {
		if n := len(ret); n > 0 {
			last := &ret[n-1]
			if last.Offset+last.Limit == p && last.Limit < batchSize {
				last.Limit++
				continue
			}
		}

		ret = append(ret, Window{Offset: p, Limit: 1})
	}

	return ret
}

// Lookup reads the identifiers at the given positions of the result set
// described by db.
//
// When a window comes back short, the identifiers read so far are returned
// together with an error wrapping ErrResultSetChanged.
func (r *Resolver[ID]) Lookup(ctx context.Context, db *gorm.DB, positions []int) (map[int]ID, error) {
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("cannot lookup identifiers: %w", err)
	}

	base := db.WithContext(ctx)
	ret := make(map[int]ID, len(positions))

	for _, w := range r.Windows(positions) {
		var ids []ID
		err := r.sort.Apply(w.Apply(base)).Pluck(r.GetIDColumn(), &ids).Error
		if err != nil {
			return ret, fmt.Errorf("cannot read window at offset %d: %w", w.Offset, err)
		}

		for i, id := range ids {
			ret[w.Offset+i] = id
		}

		if len(ids) < w.Limit {
			return ret, fmt.Errorf(
				"window at offset %d returned %d of %d rows: %w",
				w.Offset, len(ids), w.Limit, ErrResultSetChanged,
			)
		}
	}

	return ret, nil
}

// Resolve replaces the placeholders of target with identifiers read from the
// result set described by db. Returns the number of resolved positions.
//
// Identifiers read before a failure are still handed to target.
func (r *Resolver[ID]) Resolve(ctx context.Context, db *gorm.DB, target Resolvable[ID]) (int, error) {
	logger := r.getLogger()
	positions := target.PlaceholderPositions()
	if len(positions) == 0 {
		return 0, nil
	}

	ids, err := r.Lookup(ctx, db, positions)
	resolved := target.Resolve(ids)

	if err != nil {
		logger.Warn("Placeholders partially resolved",
			zap.Int("placeholders", len(positions)),
			zap.Int("resolved", resolved),
			zap.Error(err))

		return resolved, fmt.Errorf("cannot resolve placeholders: %w", err)
	}

	logger.Info("Placeholders resolved",
		zap.Int("placeholders", len(positions)),
		zap.Int("resolved", resolved))

	return resolved, nil
}

func (r *Resolver[ID]) getLogger() *zap.Logger {
	if r == nil || r.logger == nil {
		return zap.NewNop()
	}

	return r.logger
}

func (r *Resolver[ID]) validate() error {
	if r == nil {
		return fmt.Errorf("resolver is nil")
	}

	if err := r.sort.validate(); err != nil {
		return err
	}

	if err := validateColumnName(r.GetIDColumn()); err != nil {
		return fmt.Errorf("invalid id column: %w", err)
	}

	return nil
}
