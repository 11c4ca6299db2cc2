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
	"context"
	"errors"
	"fmt"

	"github.com/tomoncle/sieve/database"
	"github.com/tomoncle/sieve/predicate"
	"github.com/tomoncle/sieve/types"
	"github.com/uptrace/bun"
)

type JoinKind int

const (
	LeftJoin JoinKind = iota
	InnerJoin
)

func (k JoinKind) String() string {
	if k == InnerJoin {
		return "JOIN"
	}
	return "LEFT JOIN"
}

// Cardinality says how many joined rows can match one root row.
type Cardinality int

const (
	ToOne Cardinality = iota
	ToMany
)

// Join is one table joined to the root table. On may reference the root alias
// and the aliases of earlier joins.
type Join struct {
	Kind        JoinKind
	Table       string
	Alias       string
	On          string
	Args        []any
	Cardinality Cardinality
}

// SortColumn is the column behind a sort key. Nullable columns get an explicit
// null placement term.
type SortColumn struct {
	Column   string
	Nullable bool
}

// QuerySpec declares a paged query: the root table, the projected columns,
// the joins and the sort keys callers may use.
type QuerySpec struct {
	Table      string
	Alias      string
	Columns    []string
	Joins      []Join
	Sortable   map[string]SortColumn
	TieBreaker string
}

// PagedQuery fetches pages of D for a QuerySpec. It holds no connection and
// is safe for concurrent use.
type PagedQuery[D any] struct {
	spec   QuerySpec
	logger database.Logger
}

// NewPagedQuery checks spec and returns a query over it. A to-many join is
// rejected with ErrFanOutJoin.
func NewPagedQuery[D any](spec QuerySpec) (*PagedQuery[D], error) {
	if spec.Table == "" || spec.Alias == "" {
		return nil, fmt.Errorf("%w: table and alias are required", ErrInvalidSpec)
	}
	if len(spec.Columns) == 0 {
		return nil, fmt.Errorf("%w: no columns selected from %s", ErrInvalidSpec, spec.Table)
	}
	if spec.TieBreaker == "" {
		return nil, fmt.Errorf("%w: a tie-breaker column is required for stable pages", ErrInvalidSpec)
	}
	aliases := map[string]bool{spec.Alias: true}
	for _, j := range spec.Joins {
		if j.Cardinality == ToMany {
			return nil, fmt.Errorf("%w: %s AS %s", ErrFanOutJoin, j.Table, j.Alias)
		}
		if j.Table == "" || j.Alias == "" || j.On == "" {
			return nil, fmt.Errorf("%w: join needs table, alias and condition", ErrInvalidSpec)
		}
		if aliases[j.Alias] {
			return nil, fmt.Errorf("%w: duplicate alias %q", ErrInvalidSpec, j.Alias)
		}
		aliases[j.Alias] = true
	}
	for key, col := range spec.Sortable {
		if col.Column == "" {
			return nil, fmt.Errorf("%w: sort key %q has no column", ErrInvalidSpec, key)
		}
	}
	return &PagedQuery[D]{spec: spec, logger: database.GetLogger()}, nil
}

// MustPagedQuery is NewPagedQuery for package-level query declarations.
func MustPagedQuery[D any](spec QuerySpec) *PagedQuery[D] {
	q, err := NewPagedQuery[D](spec)
	if err != nil {
		panic(err)
	}
	return q
}

// Spec returns the declaration the query was built from.
func (pq *PagedQuery[D]) Spec() QuerySpec { return pq.spec }

// Validate checks page and its sort keys. It performs no I/O.
func (pq *PagedQuery[D]) Validate(page *types.PageRequest) error {
	if page == nil {
		return types.NewValidationError("page", "is required")
	}
	errs := []error{page.Validate()}
	for i, o := range page.Orders {
		if _, ok := pq.spec.Sortable[o.Field]; !ok {
			errs = append(errs, types.NewValidationError(
				fmt.Sprintf("orders[%d].field", i), fmt.Sprintf("unknown sort key %q", o.Field)))
		}
	}
	return errors.Join(errs...)
}

func (pq *PagedQuery[D]) from(db bun.IDB) *bun.SelectQuery {
	return db.NewSelect().TableExpr("? AS ?", bun.Ident(pq.spec.Table), bun.Ident(pq.spec.Alias))
}

func applyJoin(q *bun.SelectQuery, j Join) *bun.SelectQuery {
	return q.Join(j.Kind.String()+" ? AS ?", bun.Ident(j.Table), bun.Ident(j.Alias)).
		JoinOn(j.On, j.Args...)
}

func (pq *PagedQuery[D]) selectQuery(db bun.IDB, cond predicate.Condition, orders []types.Order) *bun.SelectQuery {
	q := pq.from(db)
	for _, c := range pq.spec.Columns {
		q = q.ColumnExpr(c)
	}
	for _, j := range pq.spec.Joins {
		q = applyJoin(q, j)
	}
	q = cond.Apply(q)
	return applyOrders(q, pq.spec.Sortable, pq.spec.TieBreaker, orders)
}

// Fetch runs the page query and scans the projection into D. The page must
// already be validated.
func (pq *PagedQuery[D]) Fetch(ctx context.Context, db bun.IDB, cond predicate.Condition, page *types.PageRequest) ([]D, error) {
	items := make([]D, 0, pageCapacity(page.Limit))
	err := pq.selectQuery(db, cond, page.Orders).
		Offset(page.Offset).
		Limit(page.Limit).
		Scan(ctx, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FetchAll returns every matching row ordered by the tie-breaker.
func (pq *PagedQuery[D]) FetchAll(ctx context.Context, db bun.IDB, cond predicate.Condition) ([]D, error) {
	items := make([]D, 0)
	if err := pq.selectQuery(db, cond, nil).Scan(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// countJoins keeps inner joins, which can drop root rows, and joins whose
// alias an active fragment references. Left to-one joins used only by the
// projection cannot change the row count and are left out.
func (pq *PagedQuery[D]) countJoins(cond predicate.Condition) []Join {
	var joins []Join
	for _, j := range pq.spec.Joins {
		if j.Kind == InnerJoin || cond.References(j.Alias) {
			joins = append(joins, j)
		}
	}
	return joins
}

// Count returns the number of root rows matching cond.
func (pq *PagedQuery[D]) Count(ctx context.Context, db bun.IDB, cond predicate.Condition) (int64, error) {
	q := pq.from(db).ColumnExpr("count(*)")
	for _, j := range pq.countJoins(cond) {
		q = applyJoin(q, j)
	}
	q = cond.Apply(q)

	var total int64
	if err := q.Scan(ctx, &total); err != nil {
		return 0, err
	}
	return total, nil
}

// Page validates page, fetches it and resolves the total. Execution errors
// are returned unchanged.
func (pq *PagedQuery[D]) Page(ctx context.Context, db bun.IDB, cond predicate.Condition, page *types.PageRequest) (*types.PageResult[D], error) {
	if err := pq.Validate(page); err != nil {
		return nil, err
	}

	items, err := pq.Fetch(ctx, db, cond, page)
	if err != nil {
		pq.logFailure("fetch", err)
		return nil, err
	}
	result := types.NewPageResult(page, items)

	counted, err := ResolveTotal(ctx, page, result, func(ctx context.Context) (int64, error) {
		return pq.Count(ctx, db, cond)
	})
	if err != nil {
		pq.logFailure("count", err)
		return nil, err
	}
	pq.logger.Debug("Paged query finished",
		"table", pq.spec.Table,
		"fragments", cond.Len(),
		"size", len(items),
		"counted", counted,
		"skip_total", page.SkipTotal,
	)
	return result, nil
}

func (pq *PagedQuery[D]) logFailure(stage string, err error) {
	_, kind := database.ClassifySQLError(err)
	pq.logger.Error("Paged query failed", "table", pq.spec.Table, "stage", stage, "kind", kind, "error", err)
}
