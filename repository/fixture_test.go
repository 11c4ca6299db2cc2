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
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomoncle/sieve/database"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type category struct {
	bun.BaseModel `bun:"table:category,alias:c"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull"`
}

type widget struct {
	bun.BaseModel `bun:"table:widget,alias:w"`

	ID         int64   `bun:"id,pk,autoincrement"`
	Label      *string `bun:"label"`
	Weight     int     `bun:"weight,notnull"`
	CategoryID *int64  `bun:"category_id"`
}

type widgetRow struct {
	ID       int64   `bun:"id"`
	Label    *string `bun:"label"`
	Weight   int     `bun:"weight"`
	Category *string `bun:"category"`
}

func ptr[T any](v T) *T { return &v }

var widgetSpec = QuerySpec{
	Table:   "widget",
	Alias:   "w",
	Columns: []string{"w.id AS id", "w.label AS label", "w.weight AS weight", "c.name AS category"},
	Joins: []Join{{
		Kind:  LeftJoin,
		Table: "category",
		Alias: "c",
		On:    "c.id = w.category_id",
	}},
	Sortable: map[string]SortColumn{
		"id":       {Column: "w.id"},
		"label":    {Column: "w.label", Nullable: true},
		"weight":   {Column: "w.weight"},
		"category": {Column: "c.name", Nullable: true},
	},
	TieBreaker: "w.id",
}

// newWidgetDB seeds five widgets:
//
//	1 a   10 light
//	2 b   20 light
//	3 c   30 heavy
//	4 nil 40 heavy
//	5 e   50 -
//
// and returns the DB with a counter that was reset after seeding.
func newWidgetDB(t *testing.T) (*bun.DB, *database.QueryCounter) {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	counter := database.NewQueryCounter()
	db.AddQueryHook(counter)

	ctx := context.Background()
	require.NoError(t, database.CreateTables(ctx, db, nil, (*category)(nil), (*widget)(nil)))

	heavy, light := &category{Name: "heavy"}, &category{Name: "light"}
	require.NoError(t, NewRepository[category](db).Create(ctx, heavy, light))

	widgets := []*widget{
		{Label: ptr("a"), Weight: 10, CategoryID: &light.ID},
		{Label: ptr("b"), Weight: 20, CategoryID: &light.ID},
		{Label: ptr("c"), Weight: 30, CategoryID: &heavy.ID},
		{Label: nil, Weight: 40, CategoryID: &heavy.ID},
		{Label: ptr("e"), Weight: 50},
	}
	require.NoError(t, NewRepository[widget](db).Create(ctx, widgets...))

	counter.Reset()
	return db, counter
}

func rowIDs(rows []widgetRow) []int64 {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}
