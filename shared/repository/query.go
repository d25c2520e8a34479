package repository

import (
	"errors"
	"fmt"
	"hotelier/shared/dto"
	"reflect"
	"slices"
	"strings"
)

var errRequiredFilter = errors.New("required filter")

// joiner is implemented by models that read from more than one table.
type joiner interface {
	GetJoinQuery() string
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) expr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return c.table + "." + c.name + " AS " + c.alias
	default:
		return c.table + "." + c.name
	}
}

// schema is the SQL shape of a model, derived once from its struct tags:
// db names the column, table moves it to a joined table, column renames the
// source column and readonly keeps it out of inserts.
type schema struct {
	table    string
	primary  string
	join     string
	columns  []column
	writable []string
}

func newSchema[T any](table, primary string) schema {
	var zero T

	s := schema{table: table, primary: primary}
	s.columns, s.writable = scanColumns(table, reflect.TypeOf(zero))

	if j, ok := any(zero).(joiner); ok {
		s.join = j.GetJoinQuery()
	}

	return s
}

func scanColumns(table string, typ reflect.Type) ([]column, []string) {
	var (
		columns  []column
		writable []string
	)

	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedWritable := scanColumns(table, field.Type)
			columns = append(columns, nested...)
			writable = append(writable, nestedWritable...)
		}

		name := field.Tag.Get("db")
		if name == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table && field.Tag.Get("readonly") != "true" {
			writable = append(writable, name)
		}

		if source := field.Tag.Get("column"); source != "" {
			columns = append(columns, column{name: source, table: owner, alias: name})
		} else {
			columns = append(columns, column{name: name, table: owner})
		}
	}

	return columns, writable
}

// selectList renders the projected columns, restricted to only when it is not empty.
func (s schema) selectList(only []string) string {
	exprs := make([]string, 0, len(s.columns))

	for _, col := range s.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.expr())
	}

	return strings.Join(exprs, ", ")
}

func (s schema) insertQuery(returning bool) string {
	binds := make([]string, len(s.writable))
	for i, name := range s.writable {
		binds[i] = ":" + name
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.table, strings.Join(s.writable, ", "), strings.Join(binds, ", "))
	if returning {
		query += " RETURNING " + s.primary
	}

	return query
}

func (s schema) selectQuery(where string, only []string, tail ...string) string {
	parts := []string{"SELECT", s.selectList(only), "FROM", s.table, s.join, where}
	parts = append(parts, tail...)

	return compact(parts)
}

func (s schema) countQuery(where string) string {
	return compact([]string{"SELECT COUNT(" + s.table + "." + s.primary + ")", "FROM", s.table, s.join, where})
}

func (s schema) existQuery(where string) string {
	return fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", s.table, where)
}

func (s schema) updateQuery(fields map[string]any, where string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}

	slices.Sort(names)

	assignments := make([]string, len(names))
	for i, name := range names {
		assignments[i] = name + " = :" + name
	}

	return fmt.Sprintf("UPDATE %s SET %s %s", s.table, strings.Join(assignments, ", "), where)
}

func (s schema) deleteQuery(where string) string {
	return fmt.Sprintf("DELETE FROM %s %s", s.table, where)
}

// whereClause renders filter as a WHERE clause, or "" when the group is empty.
func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

// pageClause renders ORDER BY and LIMIT/OFFSET for params, binding the numbers into args.
func pageClause(params dto.QueryParams, args map[string]any) string {
	var parts []string

	if params.SortBy != "" && params.SortDir != "" {
		parts = append(parts, "ORDER BY "+params.SortBy+" "+params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		parts = append(parts, "LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			parts = append(parts, "OFFSET :offset")
		}
	}

	return strings.Join(parts, " ")
}

func compact(parts []string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}
