// Package querybuilder assembles parameterized postgres statements for the
// repository layer. Placeholders are numbered in append order.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates statement text and bind arguments. nextArg hands
// out $1, $2, ... in the order values are appended.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) raw(s string) {
	w.sql.WriteString(s)
}

func (w *writer) nextArg(value any) {
	w.args = append(w.args, value)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// substitute writes expr with each ? replaced by the next placeholder.
// Surplus question marks are kept as-is.
func (w *writer) substitute(expr string, values []any) {
	if len(values) == 0 {
		w.raw(expr)
		return
	}
	used := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && used < len(values) {
			w.nextArg(values[used])
			used++
			continue
		}
		w.sql.WriteByte(expr[i])
	}
}

func (w *writer) where(conditions []Condition) {
	for i, cond := range conditions {
		if i == 0 {
			w.raw(" WHERE ")
		} else {
			w.raw(" AND ")
		}
		cond(w)
	}
}

// A Condition renders one WHERE predicate.
type Condition func(w *writer)

func Eq(column string, value any) Condition {
	return func(w *writer) {
		w.raw(column)
		w.raw(" = ")
		w.nextArg(value)
	}
}

// In renders column IN (...). An empty value list renders a predicate
// that matches no rows.
func In(column string, values []any) Condition {
	return func(w *writer) {
		if len(values) == 0 {
			w.raw("1=0")
			return
		}
		w.raw(column)
		w.raw(" IN (")
		for i, v := range values {
			if i > 0 {
				w.raw(", ")
			}
			w.nextArg(v)
		}
		w.raw(")")
	}
}

func IsNull(column string) Condition {
	return func(w *writer) {
		w.raw(column)
		w.raw(" IS NULL")
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("select table is required")
	}

	w := &writer{}
	w.raw("SELECT ")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(" FROM ")
	w.raw(b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ")
		w.raw(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.raw(" LIMIT ")
		w.raw(strconv.Itoa(b.limit))
	}
	return w.sql.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends trailing SQL such as RETURNING or ON CONFLICT clauses.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := &writer{}
	w.raw("INSERT INTO ")
	w.raw(b.table)
	w.raw(" (")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.raw(", ")
		}
		w.raw("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.raw(", ")
			}
			w.nextArg(value)
		}
		w.raw(")")
	}
	if b.suffix != "" {
		w.raw(" ")
		w.raw(b.suffix)
	}
	return w.sql.String(), w.args, nil
}

type assignment struct {
	column string
	value  any
	rawSQL string
	args   []any
	isExpr bool
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a raw SQL expression; each ? in expr becomes the next
// placeholder bound to the matching arg.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, rawSQL: expr, args: args, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("update table is required")
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update sets are required")
	}

	w := &writer{}
	w.raw("UPDATE ")
	w.raw(b.table)
	w.raw(" SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(set.column)
		w.raw(" = ")
		if set.isExpr {
			w.substitute(set.rawSQL, set.args)
		} else {
			w.nextArg(set.value)
		}
	}
	w.where(b.where)
	return w.sql.String(), w.args, nil
}
