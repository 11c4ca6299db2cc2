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

	"github.com/tomoncle/sieve/database"
	"github.com/tomoncle/sieve/repository"
	"github.com/tomoncle/sieve/types"
	"github.com/uptrace/bun"
)

// Sort keys accepted by TeamSearch.
const (
	SortTeamByID          = "id"
	SortTeamByName        = "name"
	SortTeamByMemberCount = "memberCount"
)

// teamQuery counts members with a correlated subquery so that joining the
// to-many side never multiplies team rows.
var teamQuery = repository.MustPagedQuery[TeamDto](repository.QuerySpec{
	Table: "team",
	Alias: "t",
	Columns: []string{
		"t.id AS team_id",
		"t.name AS name",
		"(SELECT count(*) FROM member AS mc WHERE mc.team_id = t.id) AS member_count",
	},
	Sortable: map[string]repository.SortColumn{
		SortTeamByID:          {Column: "t.id"},
		SortTeamByName:        {Column: "t.name"},
		SortTeamByMemberCount: {Column: "member_count"},
	},
	TieBreaker: "t.id",
})

type TeamSearch struct {
	db     bun.IDB
	logger database.Logger
}

func NewTeamSearch(db bun.IDB) *TeamSearch {
	return &TeamSearch{db: db, logger: database.GetLogger()}
}

func (s *TeamSearch) WithDB(db bun.IDB) *TeamSearch {
	return &TeamSearch{db: db, logger: s.logger}
}

// Search returns one page of teams matching cond with their member counts.
func (s *TeamSearch) Search(ctx context.Context, cond *TeamSearchCondition, page *types.PageRequest) (*types.PageResult[TeamDto], error) {
	if err := teamQuery.Validate(page); err != nil {
		return nil, err
	}
	c := cond.Condition()
	s.logger.Debug("Team search", "where", c.String(), "offset", page.Offset, "limit", page.Limit)
	return teamQuery.Page(ctx, s.db, c, page)
}
