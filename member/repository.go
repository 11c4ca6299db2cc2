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

	"github.com/tomoncle/sieve/predicate"
	"github.com/tomoncle/sieve/repository"
	"github.com/uptrace/bun"
)

// Repository is the Member repository plus member specific lookups and
// aggregates.
type Repository struct {
	repository.Repository[Member]
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{Repository: repository.NewRepository[Member](db), db: db}
}

// WithDB returns a repository bound to db, e.g. a bun.Tx.
func (r *Repository) WithDB(db bun.IDB) *Repository {
	return NewRepository(db)
}

// Teams returns a repository for the teams members belong to.
func (r *Repository) Teams() repository.Repository[Team] {
	return repository.NewRepository[Team](r.db)
}

// FindByUsername returns the members with exactly this username.
func (r *Repository) FindByUsername(ctx context.Context, username string) ([]*Member, error) {
	return r.List(ctx, predicate.And(predicate.Eq("m.username", username)))
}

// AgeSummary aggregates the ages of members matching cond, the same criteria
// MemberSearch accepts.
func (r *Repository) AgeSummary(ctx context.Context, cond *MemberSearchCondition) (*AgeSummary, error) {
	if err := cond.Validate(); err != nil {
		return nil, err
	}
	q := r.db.NewSelect().
		TableExpr("member AS m").
		Join("LEFT JOIN team AS t").JoinOn("t.id = m.team_id").
		ColumnExpr("count(*) AS member_count").
		ColumnExpr("coalesce(sum(m.age), 0) AS age_sum").
		ColumnExpr("coalesce(avg(m.age), 0) AS age_avg").
		ColumnExpr("coalesce(max(m.age), 0) AS age_max").
		ColumnExpr("coalesce(min(m.age), 0) AS age_min")
	q = cond.Condition().Apply(q)

	summary := new(AgeSummary)
	if err := q.Scan(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// TeamAverageAges returns the average member age per team ordered by team
// name. When above is set only teams whose average is greater than it are
// kept. Teams without members are left out.
func (r *Repository) TeamAverageAges(ctx context.Context, above *float64) ([]TeamAverageAge, error) {
	q := r.db.NewSelect().
		TableExpr("member AS m").
		Join("JOIN team AS t").JoinOn("t.id = m.team_id").
		ColumnExpr("t.name AS team_name").
		ColumnExpr("avg(m.age) AS avg_age").
		GroupExpr("t.name").
		OrderExpr("t.name ASC")
	if above != nil {
		q = q.Having("avg(m.age) > ?", *above)
	}

	rows := make([]TeamAverageAge, 0)
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
