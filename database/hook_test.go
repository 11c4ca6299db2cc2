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

package database

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) SetLevel(LogLevel) {}

func (l *recordingLogger) Debug(string, ...interface{}) {}

func (l *recordingLogger) Info(string, ...interface{}) {}

func (l *recordingLogger) Error(string, ...interface{}) {}

func (l *recordingLogger) Warn(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestQueryCounter(t *testing.T) {
	db := newTestDB(t)
	counter := NewQueryCounter()
	db.AddQueryHook(counter)
	ctx := context.Background()

	var n int
	require.NoError(t, db.NewSelect().ColumnExpr("1").Scan(ctx, &n))
	require.NoError(t, db.NewSelect().ColumnExpr("2").Scan(ctx, &n))
	_, err := db.ExecContext(ctx, "CREATE TABLE t (id INTEGER)")
	require.NoError(t, err)

	assert.Equal(t, 3, counter.Total())
	assert.Equal(t, 2, counter.Count("SELECT"))
	assert.Len(t, counter.Queries(), 3)

	counter.Reset()
	assert.Equal(t, 0, counter.Total())
	assert.Empty(t, counter.Queries())
}

func TestSlowQueryHook(t *testing.T) {
	db := newTestDB(t)
	log := &recordingLogger{}
	db.AddQueryHook(NewSlowQueryHook(time.Nanosecond, log))

	var n int
	require.NoError(t, db.NewSelect().ColumnExpr("1").Scan(context.Background(), &n))
	_ = db.NewSelect().TableExpr("missing").Scan(context.Background(), &n)

	log.mu.Lock()
	defer log.mu.Unlock()
	require.Len(t, log.warnings, 1, "failed queries are not reported as slow")
	assert.Contains(t, log.warnings[0], "slow query")
}
