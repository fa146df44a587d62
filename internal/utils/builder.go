package querybuilder

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles SQL with `?` placeholders. Callers rebind to the
// driver's style, e.g. sqlx.Rebind(sqlx.DOLLAR, query).
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder

	And(clause string, args ...interface{}) QueryBuilder

	OrderBy(col string, asc bool) QueryBuilder
	Join(joinType JoinType, table, alias, on string) QueryBuilder
	Limit(n int) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder

	Delete(table string) QueryBuilder
	Returning(cols ...string) QueryBuilder
	Build() (string, []interface{})

	DoNothing() QueryBuilder
	SetExclude(cols ...string) QueryBuilder
	OnConflict(cols ...string) QueryBuilder
}

type queryBuilder struct {
	table       string
	cols        []string
	conditions  []predicate
	joins       []join
	values      InsertRows
	orderBy     []string
	returning   []string
	limit       int
	isDelete    bool
	excludeCols []string
	onConflict  []string
	schema      string
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}

func (q *queryBuilder) DoNothing() QueryBuilder {
	q.excludeCols = nil
	return q
}

func (q *queryBuilder) SetExclude(cols ...string) QueryBuilder {
	q.excludeCols = cols
	return q
}

func (q *queryBuilder) OnConflict(cols ...string) QueryBuilder {
	q.onConflict = cols
	return q
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

func (q *queryBuilder) Delete(table string) QueryBuilder {
	q.table = table
	q.isDelete = true
	return q
}

func (q *queryBuilder) Returning(cols ...string) QueryBuilder {
	q.returning = append(q.returning, cols...)
	return q
}

func (q *queryBuilder) Limit(n int) QueryBuilder {
	q.limit = n
	return q
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, predicate{clause: clause, args: args})
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	return q.And(clause, args...)
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	direction := "ASC"
	if !asc {
		direction = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, direction))
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Join(joinType JoinType, table, alias, on string) QueryBuilder {
	q.joins = append(q.joins, join{
		kind:  joinType,
		table: table,
		alias: alias,
		on:    on,
	})
	return q
}

// qualify prefixes a table with the schema, when one is set.
func (q *queryBuilder) qualify(table string) string {
	if q.schema == "" || strings.Contains(table, ".") {
		return table
	}
	return q.schema + "." + table
}

// buildCondition joins every predicate with AND
func buildCondition(conditions []predicate) (string, []interface{}) {
	clauses := make([]string, 0, len(conditions))
	args := make([]interface{}, 0)
	for _, cond := range conditions {
		clauses = append(clauses, cond.clause)
		args = append(args, cond.args...)
	}
	return strings.Join(clauses, " AND "), args
}

func (q *queryBuilder) Build() (string, []interface{}) {
	switch {
	case len(q.values) > 0:
		return q.buildInsert()
	case q.isDelete:
		return q.buildDelete()
	default:
		return q.buildSelect()
	}
}

func (q *queryBuilder) writeJoins(sb *strings.Builder) {
	for _, j := range q.joins {
		sb.WriteString(fmt.Sprintf(" %s %s", j.kind, q.qualify(j.table)))
		if j.alias != "" {
			sb.WriteString(" " + j.alias)
		}
		sb.WriteString(" ON " + j.on)
	}
}

func (q *queryBuilder) writeWhere(sb *strings.Builder, args []interface{}) []interface{} {
	if len(q.conditions) == 0 {
		return args
	}
	condition, condArgs := buildCondition(q.conditions)
	if condition == "" {
		return args
	}
	sb.WriteString(" WHERE " + condition)
	return append(args, condArgs...)
}

func (q *queryBuilder) writeReturning(sb *strings.Builder) {
	if len(q.returning) > 0 {
		sb.WriteString(" RETURNING " + strings.Join(q.returning, ", "))
	}
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	cols := "*"
	if len(q.cols) > 0 {
		cols = strings.Join(q.cols, ", ")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("SELECT %s FROM %s", cols, q.qualify(q.table)))
	q.writeJoins(&sb)
	args := q.writeWhere(&sb, nil)

	if len(q.orderBy) > 0 {
		sb.WriteString(" ORDER BY " + strings.Join(q.orderBy, ", "))
	}
	if q.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", q.limit))
	}
	return sb.String(), args
}

// buildInsert returns an empty query when rows do not match the column list.
func (q *queryBuilder) buildInsert() (string, []interface{}) {
	numOfParam := len(q.cols)
	if numOfParam == 0 {
		return "", nil
	}

	tuples := make([]string, 0, len(q.values))
	args := make([]interface{}, 0, numOfParam*len(q.values))
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", numOfParam), ", ")
	for _, row := range q.values {
		if len(row) != numOfParam {
			return "", nil
		}
		args = append(args, row...)
		tuples = append(tuples, "("+placeholders+")")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		q.qualify(q.table), strings.Join(q.cols, ", "), strings.Join(tuples, ", ")))

	if len(q.onConflict) > 0 {
		sb.WriteString(fmt.Sprintf(" ON CONFLICT (%s)", strings.Join(q.onConflict, ", ")))
		if len(q.excludeCols) == 0 {
			sb.WriteString(" DO NOTHING")
		} else {
			sets := make([]string, 0, len(q.excludeCols))
			for _, col := range q.excludeCols {
				sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
			}
			sb.WriteString(" DO UPDATE SET " + strings.Join(sets, ", "))
		}
	}

	q.writeReturning(&sb)
	return sb.String(), args
}

// buildDelete refuses to produce an unconditional DELETE.
func (q *queryBuilder) buildDelete() (string, []interface{}) {
	condition, args := buildCondition(q.conditions)
	if condition == "" {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("DELETE FROM %s WHERE %s", q.qualify(q.table), condition))
	q.writeReturning(&sb)
	return sb.String(), args
}
