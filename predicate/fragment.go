/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package predicate

import (
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// Op is the comparison a Fragment applies to its column.
type Op int

const (
	opAbsent Op = iota
	OpEq
	OpGoe
	OpLoe
	OpPrefix
	OpExists
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "="
	case OpGoe:
		return ">="
	case OpLoe:
		return "<="
	case OpPrefix:
		return "LIKE"
	case OpExists:
		return "EXISTS"
	default:
		return "absent"
	}
}

// likeEscape is the escape character used for prefix patterns.
const likeEscape = `\`

// Fragment is a single boolean condition on one column, a self-contained
// EXISTS subquery, or the absence marker. Fragments are values; they are
// never mutated after construction.
type Fragment struct {
	op     Op
	column string
	value  any
	expr   string
	args   []any
}

// Absent is the fragment that restricts nothing.
var Absent = Fragment{}

// Eq matches rows where column equals value.
func Eq(column string, value any) Fragment {
	return Fragment{op: OpEq, column: column, value: value}
}

// Goe matches rows where column is greater than or equal to value.
func Goe(column string, value any) Fragment {
	return Fragment{op: OpGoe, column: column, value: value}
}

// Loe matches rows where column is less than or equal to value.
func Loe(column string, value any) Fragment {
	return Fragment{op: OpLoe, column: column, value: value}
}

// Prefix matches rows where column starts with prefix, ignoring case on every
// dialect: both sides are compared through lower(). LIKE wildcards inside
// prefix are matched literally.
func Prefix(column string, prefix string) Fragment {
	return Fragment{op: OpPrefix, column: column, value: escapeLike(prefix) + "%"}
}

// Exists wraps a correlated subquery, e.g.
// "SELECT 1 FROM member AS mx WHERE mx.team_id = t.id AND mx.username = ?".
// It is the only way to filter through a to-many relation.
func Exists(subquery string, args ...any) Fragment {
	return Fragment{op: OpExists, expr: subquery, args: args}
}

// EqIfPresent is Eq when v is non-nil, otherwise Absent.
func EqIfPresent[T any](column string, v *T) Fragment {
	if v == nil {
		return Absent
	}
	return Eq(column, *v)
}

// EqIfNotEmpty is Eq when v is non-nil and not blank, otherwise Absent.
func EqIfNotEmpty(column string, v *string) Fragment {
	if v == nil || strings.TrimSpace(*v) == "" {
		return Absent
	}
	return Eq(column, *v)
}

// PrefixIfNotEmpty is Prefix when v is non-nil and not blank, otherwise Absent.
func PrefixIfNotEmpty(column string, v *string) Fragment {
	if v == nil || strings.TrimSpace(*v) == "" {
		return Absent
	}
	return Prefix(column, *v)
}

// GoeIfPresent is Goe when v is non-nil, otherwise Absent.
func GoeIfPresent[T any](column string, v *T) Fragment {
	if v == nil {
		return Absent
	}
	return Goe(column, *v)
}

// LoeIfPresent is Loe when v is non-nil, otherwise Absent.
func LoeIfPresent[T any](column string, v *T) Fragment {
	if v == nil {
		return Absent
	}
	return Loe(column, *v)
}

// Range returns the bound fragments for an optional [lower, upper] pair: a
// lower bound, an upper bound, both as separate fragments, or Absent for each
// missing side.
func Range[T any](column string, lower, upper *T) []Fragment {
	return []Fragment{GoeIfPresent(column, lower), LoeIfPresent(column, upper)}
}

// IsAbsent reports whether f restricts nothing.
func (f Fragment) IsAbsent() bool { return f.op == opAbsent }

func (f Fragment) Op() Op { return f.op }

// Column returns the qualified column, or "" for subquery fragments.
func (f Fragment) Column() string { return f.column }

func (f Fragment) Value() any { return f.value }

// Alias returns the table alias qualifying the column, if any.
func (f Fragment) Alias() string {
	if i := strings.IndexByte(f.column, '.'); i > 0 {
		return f.column[:i]
	}
	return ""
}

func (f Fragment) String() string {
	switch f.op {
	case opAbsent:
		return "absent"
	case OpExists:
		return fmt.Sprintf("EXISTS (%s)", f.expr)
	default:
		return fmt.Sprintf("%s %s ?", f.column, f.op)
	}
}

func (f Fragment) appendTo(q *bun.SelectQuery) *bun.SelectQuery {
	switch f.op {
	case OpEq:
		return q.Where("? = ?", bun.Ident(f.column), f.value)
	case OpGoe:
		return q.Where("? >= ?", bun.Ident(f.column), f.value)
	case OpLoe:
		return q.Where("? <= ?", bun.Ident(f.column), f.value)
	case OpPrefix:
		return q.Where("lower(?) LIKE lower(?) ESCAPE ?", bun.Ident(f.column), f.value, likeEscape)
	case OpExists:
		return q.Where("EXISTS ("+f.expr+")", f.args...)
	default:
		return q
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(s)
}
