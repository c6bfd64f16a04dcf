// Package database holds small SQL composition helpers shared by the
// Postgres repositories. It builds parameterized list queries from typed
// conditions so repositories never concatenate user input into SQL.
package database

import (
	"fmt"
	"regexp"
	"strings"
)

// ConditionType enumerates the supported WHERE operators.
type ConditionType int

const (
	Equal ConditionType = iota
	NotEqual
	GreaterThan
	GreaterOrEqual
	LessThan
	LessOrEqual
	Like
	ILike
	In
	IsNull
	IsNotNull
	Custom
)

var identifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// Condition is one WHERE predicate. Column must be a bare identifier
// (optionally schema-qualified); Raw is only consulted for Custom conditions
// and must use %d placeholders for argument positions.
type Condition struct {
	Column string
	Type   ConditionType
	Value  any
	Raw    string
}

// WhereCond builds a standard column/operator/value condition.
func WhereCond(column string, typ ConditionType, value any) Condition {
	return Condition{Column: column, Type: typ, Value: value}
}

// WhereRawCond builds a Custom condition from a raw fragment. The fragment is
// trusted repository code, never request input.
func WhereRawCond(raw string, values ...any) Condition {
	return Condition{Type: Custom, Raw: raw, Value: values}
}

// ListQueryOptions collects the pieces of a SELECT ... WHERE ... ORDER BY ...
// LIMIT/OFFSET query.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	Conditions []Condition
	OrderBy    string
	OrderDesc  bool
	Limit      int
	Offset     int
}

// ListOption mutates ListQueryOptions.
type ListOption func(*ListQueryOptions)

func WithColumns(cols ...string) ListOption {
	return func(o *ListQueryOptions) { o.Columns = cols }
}

func WithConditions(conds ...Condition) ListOption {
	return func(o *ListQueryOptions) { o.Conditions = append(o.Conditions, conds...) }
}

func WithOrderBy(column string, desc bool) ListOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDesc = desc
	}
}

func WithLimit(limit int) ListOption {
	return func(o *ListQueryOptions) { o.Limit = limit }
}

func WithOffset(offset int) ListOption {
	return func(o *ListQueryOptions) { o.Offset = offset }
}

// BuildListQuery assembles a parameterized SELECT statement and its argument
// slice. It returns an error when a column or table name fails identifier
// validation.
func BuildListQuery(table string, opts ...ListOption) (string, []any, error) {
	options := ListQueryOptions{Table: table, Limit: -1, Offset: -1}
	for _, opt := range opts {
		opt(&options)
	}

	if !identifierRe.MatchString(options.Table) {
		return "", nil, fmt.Errorf("invalid table name %q", options.Table)
	}

	selectClause, err := buildSelectClause(options)
	if err != nil {
		return "", nil, err
	}

	whereClause, args, err := BuildWhereClause(options.Conditions, 1)
	if err != nil {
		return "", nil, err
	}

	tail, err := buildOrderAndPagination(options, len(args))
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString(selectClause)
	if whereClause != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(whereClause)
	}
	sb.WriteString(tail)

	if options.Limit >= 0 {
		args = append(args, options.Limit)
	}
	if options.Offset >= 0 {
		args = append(args, options.Offset)
	}
	return sb.String(), args, nil
}

func buildSelectClause(options ListQueryOptions) (string, error) {
	cols := "*"
	if len(options.Columns) > 0 {
		for _, c := range options.Columns {
			if !identifierRe.MatchString(c) {
				return "", fmt.Errorf("invalid column name %q", c)
			}
		}
		cols = strings.Join(options.Columns, ", ")
	}
	return fmt.Sprintf("SELECT %s FROM %s", cols, options.Table), nil
}

func buildOrderAndPagination(options ListQueryOptions, argCount int) (string, error) {
	var sb strings.Builder
	if options.OrderBy != "" {
		if !identifierRe.MatchString(options.OrderBy) {
			return "", fmt.Errorf("invalid order column %q", options.OrderBy)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(options.OrderBy)
		if options.OrderDesc {
			sb.WriteString(" DESC")
		}
	}
	next := argCount + 1
	if options.Limit >= 0 {
		fmt.Fprintf(&sb, " LIMIT $%d", next)
		next++
	}
	if options.Offset >= 0 {
		fmt.Fprintf(&sb, " OFFSET $%d", next)
	}
	return sb.String(), nil
}

// BuildWhereClause renders conditions joined with AND, numbering placeholders
// from startArg. It returns the clause without the leading WHERE keyword.
func BuildWhereClause(conditions []Condition, startArg int) (string, []any, error) {
	var (
		parts []string
		args  []any
	)
	next := startArg
	for _, cond := range conditions {
		part, condArgs, used, err := renderCondition(cond, next)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, part)
		args = append(args, condArgs...)
		next += used
	}
	return strings.Join(parts, " AND "), args, nil
}

func renderCondition(cond Condition, next int) (string, []any, int, error) {
	if cond.Type == Custom {
		return renderCustomCondition(cond, next)
	}

	if !identifierRe.MatchString(cond.Column) {
		return "", nil, 0, fmt.Errorf("invalid column name %q", cond.Column)
	}

	switch cond.Type {
	case IsNull:
		return cond.Column + " IS NULL", nil, 0, nil
	case IsNotNull:
		return cond.Column + " IS NOT NULL", nil, 0, nil
	case In:
		return renderInCondition(cond, next)
	default:
		op, err := operatorFor(cond.Type)
		if err != nil {
			return "", nil, 0, err
		}
		return fmt.Sprintf("%s %s $%d", cond.Column, op, next), []any{cond.Value}, 1, nil
	}
}

func renderInCondition(cond Condition, next int) (string, []any, int, error) {
	values, ok := cond.Value.([]any)
	if !ok {
		return "", nil, 0, fmt.Errorf("IN condition on %q requires []any value", cond.Column)
	}
	if len(values) == 0 {
		// empty IN list matches nothing
		return "FALSE", nil, 0, nil
	}
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = fmt.Sprintf("$%d", next+i)
	}
	clause := fmt.Sprintf("%s IN (%s)", cond.Column, strings.Join(placeholders, ", "))
	return clause, values, len(values), nil
}

func renderCustomCondition(cond Condition, next int) (string, []any, int, error) {
	values, _ := cond.Value.([]any)
	placeholderArgs := make([]any, len(values))
	for i := range values {
		placeholderArgs[i] = next + i
	}
	expected := strings.Count(cond.Raw, "%d")
	if expected != len(values) {
		return "", nil, 0, fmt.Errorf("custom condition %q expects %d values, got %d", cond.Raw, expected, len(values))
	}
	return fmt.Sprintf(cond.Raw, placeholderArgs...), values, len(values), nil
}

func operatorFor(typ ConditionType) (string, error) {
	switch typ {
	case Equal:
		return "=", nil
	case NotEqual:
		return "<>", nil
	case GreaterThan:
		return ">", nil
	case GreaterOrEqual:
		return ">=", nil
	case LessThan:
		return "<", nil
	case LessOrEqual:
		return "<=", nil
	case Like:
		return "LIKE", nil
	case ILike:
		return "ILIKE", nil
	default:
		return "", fmt.Errorf("unsupported condition type %d", typ)
	}
}
