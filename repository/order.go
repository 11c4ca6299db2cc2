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

package repository

import (
	"github.com/tomoncle/sieve/types"
	"github.com/uptrace/bun"
)

// applyOrders appends ORDER BY terms for orders and then the tie-breaker.
//
// Null placement is written as a leading "col IS NULL" (nulls last) or
// "col IS NOT NULL" (nulls first) term since MySQL has no NULLS FIRST/LAST
// and the dialects disagree on the default. false sorts before true on all
// three.
func applyOrders(q *bun.SelectQuery, sortable map[string]SortColumn, tieBreaker string, orders []types.Order) *bun.SelectQuery {
	tieOrdered := false
	for _, o := range orders {
		col, ok := sortable[o.Field]
		if !ok {
			continue
		}
		q = orderColumn(q, col, o)
		if col.Column == tieBreaker {
			tieOrdered = true
		}
	}
	if !tieOrdered && tieBreaker != "" {
		q = q.OrderExpr("? ASC", bun.Ident(tieBreaker))
	}
	return q
}

func orderColumn(q *bun.SelectQuery, col SortColumn, o types.Order) *bun.SelectQuery {
	ident := bun.Ident(col.Column)
	if col.Nullable {
		if o.Nulls.Resolve() == types.NullsFirst {
			q = q.OrderExpr("? IS NOT NULL", ident)
		} else {
			q = q.OrderExpr("? IS NULL", ident)
		}
	}
	return q.OrderExpr("? "+o.Direction.String(), ident)
}
