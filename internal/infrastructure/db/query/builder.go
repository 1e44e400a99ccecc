// Package query assembles SQL with positional placeholders. Values are only ever
// bound as arguments; the SQL text contains nothing but fixed fragments and
// $n markers.
package query

import (
	"strconv"
	"strings"
)

// Builder numbers placeholders in the order values are bound.
type Builder struct {
	args []any
}

// Bind records v and returns its placeholder ($1, $2, ...).
func (b *Builder) Bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// Args returns the bound values in placeholder order.
func (b *Builder) Args() []any {
	return b.args
}

// Len is the number of bound values.
func (b *Builder) Len() int {
	return len(b.args)
}

// Where collects ANDed predicates after a base predicate that is always true.
type Where struct {
	b     *Builder
	preds []string
}

// NewWhere starts a predicate list bound through b.
func NewWhere(b *Builder) *Where {
	return &Where{b: b}
}

// Cmp appends "column op $n" bound to v.
func (w *Where) Cmp(column, op string, v any) *Where {
	w.preds = append(w.preds, column+" "+op+" "+w.b.Bind(v))
	return w
}

// Raw appends a fixed predicate that binds no value.
func (w *Where) Raw(pred string) *Where {
	w.preds = append(w.preds, pred)
	return w
}

// String renders "WHERE 1=1 AND ...".
func (w *Where) String() string {
	var sb strings.Builder
	sb.WriteString("WHERE 1=1")
	for _, p := range w.preds {
		sb.WriteString(" AND ")
		sb.WriteString(p)
	}
	return sb.String()
}

// Assignments collects "column = $n" pairs for an UPDATE.
type Assignments struct {
	b    *Builder
	sets []string
}

// NewAssignments starts an assignment list bound through b.
func NewAssignments(b *Builder) *Assignments {
	return &Assignments{b: b}
}

// Set appends "column = $n" bound to v. A nil v binds SQL NULL.
func (a *Assignments) Set(column string, v any) *Assignments {
	a.sets = append(a.sets, column+" = "+a.b.Bind(v))
	return a
}

// Empty reports whether no assignment was added.
func (a *Assignments) Empty() bool {
	return len(a.sets) == 0
}

func (a *Assignments) String() string {
	return strings.Join(a.sets, ", ")
}
