package builder

import (
	"fmt"
	"strconv"
	"strings"
)

type statementKind int

const (
	kindSelect statementKind = iota + 1
	kindInsert
	kindDelete
)

// SQLBuilder helps construct Postgres statements with numbered placeholders.
// Conditions are written with "?" and renumbered to $1, $2, ... by Build.
type SQLBuilder struct {
	kind    statementKind
	table   string
	columns []string
	values  []interface{}
	where   []condition
	or      []condition
	orderBy []string
}

type condition struct {
	sql  string
	args []interface{}
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.kind = kindSelect
	b.columns = cols
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.kind = kindInsert
	b.table = table
	b.columns = cols
	return b
}

// Values specifies the values for insertion.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = vals
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.kind = kindDelete
	b.table = table
	return b
}

// Where adds a condition. All Where conditions are combined with AND.
func (b *SQLBuilder) Where(cond string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition{sql: cond, args: args})
	return b
}

// Or adds an alternative condition, combined with OR after the Where block.
func (b *SQLBuilder) Or(cond string, args ...interface{}) *SQLBuilder {
	b.or = append(b.or, condition{sql: cond, args: args})
	return b
}

// OrderBy adds an ORDER BY term.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// BuildSafe is Build plus a check that every "?" received an argument.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("no table specified")
	}
	for _, c := range append(append([]condition{}, b.where...), b.or...) {
		if n := strings.Count(c.sql, "?"); n != len(c.args) {
			return "", nil, fmt.Errorf("condition %q has %d placeholders but %d arguments", c.sql, n, len(c.args))
		}
	}
	if b.kind == kindInsert && len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert into %s has %d columns but %d values", b.table, len(b.columns), len(b.values))
	}
	sql, args := b.Build()
	return sql, args, nil
}

// Build constructs the final SQL string and arguments. It does not modify the
// builder, so it may be called repeatedly.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	switch b.kind {
	case kindInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		for i := range b.values {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("$" + strconv.Itoa(i+1))
		}
		sb.WriteString(")")
		return sb.String(), append(args, b.values...)
	case kindDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	default:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
	}

	next := 1
	var clauses []string
	if len(b.where) > 0 {
		parts := make([]string, len(b.where))
		for i, c := range b.where {
			parts[i] = renumber(c.sql, &next)
			args = append(args, c.args...)
		}
		clauses = append(clauses, strings.Join(parts, " AND "))
	}
	for _, c := range b.or {
		clauses = append(clauses, renumber(c.sql, &next))
		args = append(args, c.args...)
	}
	if len(clauses) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(clauses, " OR "))
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	return sb.String(), args
}

// renumber replaces each "?" in cond with the next $n placeholder.
func renumber(cond string, next *int) string {
	var sb strings.Builder
	for _, r := range cond {
		if r == '?' {
			sb.WriteString("$" + strconv.Itoa(*next))
			*next++
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
