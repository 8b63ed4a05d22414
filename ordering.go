package pageselect

import (
	"fmt"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction is the sort direction of a result set column.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (d Direction) Valid() bool {
	return d == DirectionASC || d == DirectionDESC
}

type (
	// Orderings is the ORDER BY list of a result set. Global positions are only
	// stable when the last column is unique.
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps aliases accepted from clients to column names used in
	// queries, e.g. "name" -> "files.label".
	ColumnMapping = map[ColumnAlias]string
)

var _columnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

// validateColumnName rejects anything but identifiers and quoting, so column
// names can be embedded into raw SQL.
func validateColumnName(column string) error {
	if column == "" {
		return fmt.Errorf("empty column name")
	}

	if !lo.Every(_columnNameSymbols, []rune(column)) {
		return fmt.Errorf("column name contains forbidden symbols '%s'", column)
	}

	return nil
}

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	return validateColumnName(o.Column)
}

// ToSQLSlice returns "<column> <direction>" for every ordering.
//
// Example: [{"a", "ASC"}, {"b", "DESC"}] -> ["a ASC", "b DESC"].
func (o Orderings) ToSQLSlice() []string {
	return lo.Map(o, func(ordering OrderBy, _ int) string {
		return fmt.Sprintf("%s %s", ordering.Column, ordering.Direction)
	})
}

// ToSQL returns the orderings as an ORDER BY body.
//
// Example: [{"a", "ASC"}, {"b", "DESC"}] -> "a ASC, b DESC".
func (o Orderings) ToSQL() string {
	return strings.Join(o.ToSQLSlice(), ", ")
}

// Apply applies the ordering to a gorm query.
func (o Orderings) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(o.ToSQL())
}

func (o Orderings) validate() error {
	if len(o) == 0 {
		return fmt.Errorf("empty ordering list")
	}

	for _, ordering := range o {
		if err := ordering.validate(); err != nil {
			return err
		}
	}

	return nil
}

// ParseSort builds Orderings from strings of the form "alias asc|desc".
// Aliases are resolved through columnMapping; an unknown alias fails with the
// closest known alias as a hint.
func ParseSort(sort []string, columnMapping ColumnMapping) (Orderings, error) {
	ret := make(Orderings, 0, len(sort))
	aliases := lo.Keys(columnMapping)

	for _, raw := range sort {
		parts := strings.Fields(raw)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid ordering string format '%s'", raw)
		}

		alias := parts[0]
		column, ok := columnMapping[alias]
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid column alias '%s'. closest: '%s'", alias, closestAlias(alias, aliases))
		}

		ordering := OrderBy{
			Column:    column,
			Direction: Direction(strings.ToUpper(parts[1])),
		}
		if err := ordering.validate(); err != nil {
			return nil, err
		}

		ret = append(ret, ordering)
	}

	return ret, nil
}

func closestAlias(input ColumnAlias, aliases []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, alias := range aliases {
		if dist := levenshtein.ComputeDistance(alias, input); dist < minDist {
			minDist = dist
			closest = alias
		}
	}

	return closest
}
