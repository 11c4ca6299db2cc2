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

package member

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

func ptr[T any](v T) *T { return &v }

type fixture struct {
	db      *bun.DB
	counter *database.QueryCounter
	teamA   *Team
	teamB   *Team
}

// newFixture stores teamA with member1 (10) and member2 (20) and teamB with
// member3 (30) and member4 (40).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, database.CreateRegisteredTables(ctx, db, nil))

	f := &fixture{db: db, counter: database.NewQueryCounter()}
	repo := NewRepository(db)
	f.teamA, f.teamB = NewTeam("teamA"), NewTeam("teamB")
	require.NoError(t, repo.Teams().Create(ctx, f.teamA, f.teamB))
	require.NoError(t, repo.Create(ctx,
		NewMember("member1", 10, f.teamA),
		NewMember("member2", 20, f.teamA),
		NewMember("member3", 30, f.teamB),
		NewMember("member4", 40, f.teamB),
	))

	db.AddQueryHook(f.counter)
	return f
}

func (f *fixture) add(t *testing.T, m *Member) {
	t.Helper()
	require.NoError(t, NewRepository(f.db).Create(context.Background(), m))
	f.counter.Reset()
}

func usernames(rows []MemberTeamDto) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		if r.Username == nil {
			out[i] = "<nil>"
			continue
		}
		out[i] = *r.Username
	}
	return out
}
