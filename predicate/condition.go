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
	"strings"

	"github.com/uptrace/bun"
)

// Condition is the conjunction of the active fragments in declaration order.
// The zero value is the universal condition and matches every row.
type Condition struct {
	fragments []Fragment
}

// All is the universal condition.
var All = Condition{}

// And conjoins fragments, dropping absent ones. With no active fragments the
// result is All, never a condition that matches nothing.
func And(fragments ...Fragment) Condition {
	active := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		if !f.IsAbsent() {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return All
	}
	return Condition{fragments: active}
}

// Join conjoins several fragment groups, e.g. a Range alongside single fragments.
func Join(groups ...[]Fragment) Condition {
	var all []Fragment
	for _, g := range groups {
		all = append(all, g...)
	}
	return And(all...)
}

// IsUniversal reports whether c matches every row.
func (c Condition) IsUniversal() bool { return len(c.fragments) == 0 }

// Len returns the number of active fragments.
func (c Condition) Len() int { return len(c.fragments) }

// Fragments returns a copy of the active fragments.
func (c Condition) Fragments() []Fragment {
	out := make([]Fragment, len(c.fragments))
	copy(out, c.fragments)
	return out
}

// References reports whether an active column fragment is qualified by alias.
// EXISTS fragments are self-contained and never reference a joined alias.
func (c Condition) References(alias string) bool {
	for _, f := range c.fragments {
		if f.op != OpExists && f.Alias() == alias {
			return true
		}
	}
	return false
}

// Apply adds one WHERE term per active fragment. Bun joins consecutive
// Where calls with AND; the universal condition leaves q untouched.
func (c Condition) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	for _, f := range c.fragments {
		q = f.appendTo(q)
	}
	return q
}

func (c Condition) String() string {
	if c.IsUniversal() {
		return "TRUE"
	}
	parts := make([]string, len(c.fragments))
	for i, f := range c.fragments {
		parts[i] = f.String()
	}
	return strings.Join(parts, " AND ")
}
