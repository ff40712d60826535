// Package query provides a data-level predicate tree for filtered searches.
// Predicates are pure values: building one never touches the database. The
// repository layer lowers a predicate to a SQL boolean expression with
// positional placeholders.
package query

import (
	"strconv"
	"strings"
)

// Predicate is a composable query condition.
type Predicate interface {
	isPredicate()
}

// Equals matches rows where the field equals the value exactly.
type Equals struct {
	Field string
	Value any
}

// ILike matches rows where the field contains the value, case-insensitively.
type ILike struct {
	Field string
	Value string
}

// Range matches rows where the field lies within the inclusive bounds.
// Either bound may be nil, producing a one-sided range.
type Range struct {
	Field string
	From  any
	To    any
}

// In matches rows where the field equals any of the values. Values must be a
// slice of a type the driver can bind as an array.
type In struct {
	Field  string
	Values any
}

// Overlaps matches rows where the array-valued field shares at least one
// element with Values.
type Overlaps struct {
	Field  string
	Values []string
}

// And combines predicates conjunctively. An empty And matches everything.
type And struct {
	Preds []Predicate
}

// Or combines predicates disjunctively.
type Or struct {
	Preds []Predicate
}

func (Equals) isPredicate()   {}
func (ILike) isPredicate()    {}
func (Range) isPredicate()    {}
func (In) isPredicate()       {}
func (Overlaps) isPredicate() {}
func (And) isPredicate()      {}
func (Or) isPredicate()       {}

// likeEscaper escapes LIKE wildcard characters in user-supplied values.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SQL renders the predicate as a SQL boolean expression with positional
// placeholders numbered from start. It returns the expression and its
// arguments in placeholder order. A match-all predicate renders as "".
func SQL(p Predicate, start int) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)
	next := func() string {
		n := start + len(args)
		return "$" + strconv.Itoa(n)
	}
	var render func(p Predicate, parens bool)
	render = func(p Predicate, parens bool) {
		switch v := p.(type) {
		case Equals:
			sb.WriteString(v.Field)
			sb.WriteString(" = ")
			sb.WriteString(next())
			args = append(args, v.Value)
		case ILike:
			sb.WriteString(v.Field)
			sb.WriteString(" ILIKE ")
			sb.WriteString(next())
			args = append(args, "%"+likeEscaper.Replace(v.Value)+"%")
		case Range:
			two := v.From != nil && v.To != nil
			if two && parens {
				sb.WriteString("(")
			}
			if v.From != nil {
				sb.WriteString(v.Field)
				sb.WriteString(" >= ")
				sb.WriteString(next())
				args = append(args, v.From)
			}
			if two {
				sb.WriteString(" AND ")
			}
			if v.To != nil {
				sb.WriteString(v.Field)
				sb.WriteString(" <= ")
				sb.WriteString(next())
				args = append(args, v.To)
			}
			if two && parens {
				sb.WriteString(")")
			}
		case In:
			sb.WriteString(v.Field)
			sb.WriteString(" = ANY(")
			sb.WriteString(next())
			sb.WriteString(")")
			args = append(args, v.Values)
		case Overlaps:
			sb.WriteString(v.Field)
			sb.WriteString(" && ")
			sb.WriteString(next())
			args = append(args, v.Values)
		case And:
			kept := keep(v.Preds)
			if len(kept) > 1 && parens {
				sb.WriteString("(")
			}
			for i, sub := range kept {
				if i > 0 {
					sb.WriteString(" AND ")
				}
				render(sub, true)
			}
			if len(kept) > 1 && parens {
				sb.WriteString(")")
			}
		case Or:
			kept := keep(v.Preds)
			if len(kept) > 1 {
				sb.WriteString("(")
			}
			for i, sub := range kept {
				if i > 0 {
					sb.WriteString(" OR ")
				}
				render(sub, true)
			}
			if len(kept) > 1 {
				sb.WriteString(")")
			}
		}
	}
	render(p, false)
	return sb.String(), args
}

// Where renders the predicate as a " WHERE ..." clause, or "" when the
// predicate matches everything.
func Where(p Predicate, start int) (string, []any) {
	expr, args := SQL(p, start)
	if expr == "" {
		return "", nil
	}
	return " WHERE " + expr, args
}

// keep drops empty conjunctions/disjunctions so they render as nothing.
func keep(preds []Predicate) []Predicate {
	kept := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p == nil || isEmpty(p) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func isEmpty(p Predicate) bool {
	switch v := p.(type) {
	case And:
		return len(keep(v.Preds)) == 0
	case Or:
		return len(keep(v.Preds)) == 0
	case Range:
		return v.From == nil && v.To == nil
	default:
		return false
	}
}
