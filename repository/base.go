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
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"github.com/tomoncle/sieve/predicate"
	"github.com/tomoncle/sieve/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

type baseRepositoryImpl[T any] struct {
	db bun.IDB
}

// NewRepository returns a generic repository backed by db, which may be a
// *bun.DB or a bun.Tx.
func NewRepository[T any](db bun.IDB) Repository[T] {
	return &baseRepositoryImpl[T]{db: db}
}

// WithDB returns a repository for the same model bound to db.
func (r *baseRepositoryImpl[T]) WithDB(db bun.IDB) Repository[T] {
	return &baseRepositoryImpl[T]{db: db}
}

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepositoryImpl[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepositoryImpl[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *baseRepositoryImpl[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

func (r *baseRepositoryImpl[T]) table() *schema.Table {
	return r.db.Dialect().Tables().Get(reflect.TypeFor[T]())
}

func (r *baseRepositoryImpl[T]) pkColumn() (string, error) {
	table := r.table()
	if len(table.PKs) != 1 {
		return "", fmt.Errorf("%w: %s needs exactly one primary key", ErrInvalidSpec, table.Name)
	}
	return table.Alias + "." + table.PKs[0].Name, nil
}

// sortable exposes every column of T as a sort key named after the column.
// Pointer and nullzero fields are nullable.
func (r *baseRepositoryImpl[T]) sortable() map[string]SortColumn {
	table := r.table()
	cols := make(map[string]SortColumn, len(table.Fields))
	for _, f := range table.Fields {
		cols[f.Name] = SortColumn{
			Column:   table.Alias + "." + f.Name,
			Nullable: f.IsPtr || f.NullZero,
		}
	}
	return cols
}

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, id any) (*T, error) {
	pk, err := r.pkColumn()
	if err != nil {
		return nil, err
	}
	var entity T
	err = r.db.NewSelect().Model(&entity).Where("? = ?", bun.Ident(pk), id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) GetAll(ctx context.Context) ([]*T, error) {
	return r.List(ctx, predicate.All)
}

func (r *baseRepositoryImpl[T]) List(ctx context.Context, cond predicate.Condition) ([]*T, error) {
	pk, err := r.pkColumn()
	if err != nil {
		return nil, err
	}
	entities := make([]*T, 0)
	q := cond.Apply(r.db.NewSelect().Model(&entities))
	if err := q.OrderExpr("? ASC", bun.Ident(pk)).Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Count(ctx context.Context, cond predicate.Condition) (int64, error) {
	n, err := cond.Apply(r.db.NewSelect().Model((*T)(nil))).Count(ctx)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

// Page validates page against the columns of T, fetches the window and
// counts only when the page does not prove the total.
func (r *baseRepositoryImpl[T]) Page(ctx context.Context, cond predicate.Condition, page *types.PageRequest) (*types.PageResult[*T], error) {
	if page == nil {
		return nil, types.NewValidationError("page", "is required")
	}
	pk, err := r.pkColumn()
	if err != nil {
		return nil, err
	}
	sortable := r.sortable()
	errs := []error{page.Validate()}
	for i, o := range page.Orders {
		if _, ok := sortable[o.Field]; !ok {
			errs = append(errs, types.NewValidationError(
				fmt.Sprintf("orders[%d].field", i), fmt.Sprintf("unknown sort key %q", o.Field)))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	entities := make([]*T, 0, pageCapacity(page.Limit))
	q := cond.Apply(r.db.NewSelect().Model(&entities))
	q = applyOrders(q, sortable, pk, page.Orders)
	if err := q.Offset(page.Offset).Limit(page.Limit).Scan(ctx); err != nil {
		return nil, err
	}

	result := types.NewPageResult(page, entities)
	if _, err := ResolveTotal(ctx, page, result, func(ctx context.Context) (int64, error) {
		return r.Count(ctx, cond)
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entity ...*T) error {
	return create(ctx, r.db, entity)
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, entity *T) error {
	_, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, id any) error {
	return r.delete(ctx, r.db, id)
}

func (r *baseRepositoryImpl[T]) CreateWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error {
	return create(ctx, tx, entity)
}

func (r *baseRepositoryImpl[T]) UpdateWithTx(ctx context.Context, tx *bun.Tx, entity *T) error {
	_, err := tx.NewUpdate().Model(entity).WherePK().Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error {
	return r.delete(ctx, tx, id)
}

// delete filters on the bare primary key column since not every dialect
// aliases the table in DELETE.
func (r *baseRepositoryImpl[T]) delete(ctx context.Context, db bun.IDB, id any) error {
	if _, err := r.pkColumn(); err != nil {
		return err
	}
	pk := r.table().PKs[0].Name
	_, err := db.NewDelete().Model((*T)(nil)).Where("? = ?", bun.Ident(pk), id).Exec(ctx)
	return err
}

// create inserts entities one by one so that auto-increment keys are scanned
// back on every dialect.
func create[T any](ctx context.Context, db bun.IDB, entities []*T) error {
	for _, e := range entities {
		if _, err := db.NewInsert().Model(e).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
