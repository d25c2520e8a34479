package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

// Filter operators understood by Filter.GetWhereClause.
const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// likeEscaper keeps user input such as "50%" or "room_1" literal inside LIKE patterns.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Filter is one predicate on a column. ArgName overrides the bind name when the
// same column appears twice in a query.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq not_eq less_eq greater_eq like in"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) bindName() string {
	if f.ArgName != "" {
		return f.ArgName
	}

	return f.Field
}

// GetWhereClause renders the predicate with sqlx named binds. Unknown operators render nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, bind := f.column(), f.bindName()

	if symbol, ok := comparisons[f.Operator]; ok {
		args[bind] = f.Value

		return fmt.Sprintf("%s %s :%s", column, symbol, bind), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[bind] = "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, bind), args
	case FilterOperatorIn:
		return f.inClause(column, bind, args)
	}

	return "", args
}

// inClause expands slice values into one bind per element; an empty slice matches nothing.
func (f *Filter) inClause(column, bind string, args map[string]any) (string, map[string]any) {
	values := reflect.ValueOf(f.Value)
	if kind := values.Kind(); kind != reflect.Slice && kind != reflect.Array {
		args[bind] = f.Value

		return fmt.Sprintf("%s IN (:%s)", column, bind), args
	}

	if values.Len() == 0 {
		return "FALSE", args
	}

	placeholders := make([]string, 0, values.Len())

	for i := range values.Len() {
		name := fmt.Sprintf("%s_%d", bind, i)
		args[name] = values.Index(i).Interface()
		placeholders = append(placeholders, ":"+name)
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")), args
}

// FilterGroup joins Filter and nested FilterGroup values with Operator (AND when empty).
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var (
			clause string
			bound  map[string]any
		)

		switch node := item.(type) {
		case Filter:
			clause, bound = node.GetWhereClause()
		case FilterGroup:
			clause, bound = node.GetWhereClause()
		default:
			continue
		}

		if clause == "" {
			continue
		}

		clauses = append(clauses, clause)
		maps.Copy(args, bound)
	}

	if len(clauses) == 0 {
		return "", args
	}

	joiner := f.Operator
	if joiner == "" {
		joiner = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+joiner+" ") + ")", args
}
