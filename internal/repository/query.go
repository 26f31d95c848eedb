package repository

import (
	"strconv"
	"strings"
)

// ownerQuery accumulates a WHERE clause that always starts with the
// owner predicate. Every task statement is built from one.
type ownerQuery struct {
	conds []string
	args  []any
}

// ownedBy starts a query restricted to rows whose user_id equals userID.
func ownedBy(userID string) *ownerQuery {
	return &ownerQuery{
		conds: []string{"user_id = $1"},
		args:  []any{userID},
	}
}

// bind adds arg to the argument list and returns its placeholder.
func (q *ownerQuery) bind(arg any) string {
	q.args = append(q.args, arg)
	return "$" + strconv.Itoa(len(q.args))
}

// and appends cond, replacing every "?" in it with the placeholder bound to arg.
func (q *ownerQuery) and(cond string, arg any) *ownerQuery {
	q.conds = append(q.conds, strings.ReplaceAll(cond, "?", q.bind(arg)))
	return q
}

// where renders the accumulated conditions.
func (q *ownerQuery) where() string {
	return " WHERE " + strings.Join(q.conds, " AND ")
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns an ILIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
