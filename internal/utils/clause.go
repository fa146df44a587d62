package querybuilder

// predicate is one WHERE clause with its args. Predicates are joined with AND.
type predicate struct {
	clause string
	args   []interface{}
}

// JoinType is the SQL keyword placed before the joined table
type JoinType string

const (
	InnerJoin JoinType = "INNER JOIN"
	LeftJoin  JoinType = "LEFT JOIN"
	RightJoin JoinType = "RIGHT JOIN"
)

type join struct {
	kind  JoinType
	table string
	alias string
	on    string
}
