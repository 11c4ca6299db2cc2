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
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type item struct {
	bun.BaseModel `bun:"table:item,alias:i"`

	ID   int64   `bun:"id,pk"`
	Name *string `bun:"name"`
	Qty  int     `bun:"qty"`
}

func ptr[T any](v T) *T { return &v }

func newItemDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = db.NewCreateTable().Model((*item)(nil)).Exec(ctx)
	require.NoError(t, err)
	items := []item{
		{ID: 1, Name: ptr("apple"), Qty: 10},
		{ID: 2, Name: ptr("apricot"), Qty: 20},
		{ID: 3, Name: ptr("a_b"), Qty: 30},
		{ID: 4, Name: nil, Qty: 40},
	}
	_, err = db.NewInsert().Model(&items).Exec(ctx)
	require.NoError(t, err)
	return db
}

func selectIDs(t *testing.T, db *bun.DB, cond Condition) []int64 {
	t.Helper()
	var ids []int64
	q := db.NewSelect().TableExpr("item AS i").Column("i.id").OrderExpr("i.id ASC")
	err := cond.Apply(q).Scan(context.Background(), &ids)
	require.NoError(t, err)
	return ids
}

func TestFragmentBuilders(t *testing.T) {
	cases := []struct {
		name   string
		frag   Fragment
		absent bool
		op     Op
	}{
		{"nil string", EqIfNotEmpty("i.name", nil), true, opAbsent},
		{"empty string", EqIfNotEmpty("i.name", ptr("")), true, opAbsent},
		{"blank string", EqIfNotEmpty("i.name", ptr("  ")), true, opAbsent},
		{"present string", EqIfNotEmpty("i.name", ptr("apple")), false, OpEq},
		{"nil int", EqIfPresent[int]("i.qty", nil), true, opAbsent},
		{"zero int is present", EqIfPresent("i.qty", ptr(0)), false, OpEq},
		{"nil lower", GoeIfPresent[int]("i.qty", nil), true, opAbsent},
		{"lower", GoeIfPresent("i.qty", ptr(1)), false, OpGoe},
		{"upper", LoeIfPresent("i.qty", ptr(1)), false, OpLoe},
		{"empty prefix", PrefixIfNotEmpty("i.name", ptr("")), true, opAbsent},
		{"prefix", PrefixIfNotEmpty("i.name", ptr("ap")), false, OpPrefix},
		{"exists", Exists("SELECT 1"), false, OpExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.absent, tc.frag.IsAbsent())
			assert.Equal(t, tc.op, tc.frag.Op())
		})
	}
}

func TestRange(t *testing.T) {
	neither := Range[int]("i.qty", nil, nil)
	assert.True(t, And(neither...).IsUniversal())

	lowerOnly := And(Range("i.qty", ptr(10), nil)...)
	require.Equal(t, 1, lowerOnly.Len())
	assert.Equal(t, OpGoe, lowerOnly.Fragments()[0].Op())

	upperOnly := And(Range("i.qty", nil, ptr(10))...)
	require.Equal(t, 1, upperOnly.Len())
	assert.Equal(t, OpLoe, upperOnly.Fragments()[0].Op())

	both := And(Range("i.qty", ptr(10), ptr(20))...)
	require.Equal(t, 2, both.Len())
	assert.Equal(t, OpGoe, both.Fragments()[0].Op())
	assert.Equal(t, OpLoe, both.Fragments()[1].Op())
}

func TestAndKeepsDeclarationOrder(t *testing.T) {
	cond := And(Absent, Eq("t.name", "B"), Absent, Goe("m.age", 35), Loe("m.age", 40))
	require.Equal(t, 3, cond.Len())
	assert.Equal(t, "t.name = ? AND m.age >= ? AND m.age <= ?", cond.String())
	assert.True(t, cond.References("t"))
	assert.True(t, cond.References("m"))
	assert.False(t, cond.References("x"))
}

func TestAllAbsentIsUniversal(t *testing.T) {
	cond := And(Absent, Absent)
	assert.True(t, cond.IsUniversal())
	assert.Equal(t, All, cond)
	assert.Equal(t, "TRUE", cond.String())
	assert.Empty(t, Join().Fragments())
}

func TestExistsDoesNotReferenceAlias(t *testing.T) {
	cond := And(Exists("SELECT 1 FROM item AS x WHERE x.id = t.id"))
	assert.False(t, cond.References("t"))
}

func TestApplyAgainstDatabase(t *testing.T) {
	db := newItemDB(t)

	t.Run("universal matches every row", func(t *testing.T) {
		assert.Equal(t, []int64{1, 2, 3, 4}, selectIDs(t, db, And()))
	})
	t.Run("range is inclusive", func(t *testing.T) {
		cond := Join(Range("i.qty", ptr(20), ptr(30)))
		assert.Equal(t, []int64{2, 3}, selectIDs(t, db, cond))
	})
	t.Run("equality", func(t *testing.T) {
		assert.Equal(t, []int64{1}, selectIDs(t, db, And(Eq("i.name", "apple"))))
	})
	t.Run("prefix", func(t *testing.T) {
		assert.Equal(t, []int64{1, 2}, selectIDs(t, db, And(Prefix("i.name", "ap"))))
	})
	t.Run("prefix ignores case", func(t *testing.T) {
		assert.Equal(t, []int64{2}, selectIDs(t, db, And(Prefix("i.name", "APR"))))
		q := And(Prefix("i.name", "Ap")).Apply(db.NewSelect().TableExpr("item AS i"))
		assert.Contains(t, q.String(), "LIKE lower('Ap%')")
	})
	t.Run("prefix wildcards are literal", func(t *testing.T) {
		assert.Equal(t, []int64{3}, selectIDs(t, db, And(Prefix("i.name", "a_"))))
	})
	t.Run("exists", func(t *testing.T) {
		cond := And(Exists("SELECT 1 FROM item AS x WHERE x.id = i.id AND x.qty > ?", 25))
		assert.Equal(t, []int64{3, 4}, selectIDs(t, db, cond))
	})
	t.Run("conjunction", func(t *testing.T) {
		cond := Join([]Fragment{Prefix("i.name", "ap")}, Range("i.qty", ptr(15), nil))
		assert.Equal(t, []int64{2}, selectIDs(t, db, cond))
	})
}
