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
	"errors"

	"github.com/google/uuid"
	"github.com/tomoncle/sieve/database"
	"github.com/tomoncle/sieve/repository"
	"github.com/tomoncle/sieve/types"
	"github.com/uptrace/bun"
)

// Sort keys accepted by MemberSearch.
const (
	SortByID       = "id"
	SortByUsername = "username"
	SortByAge      = "age"
	SortByTeamName = "teamName"
)

var memberTeamQuery = repository.MustPagedQuery[MemberTeamDto](repository.QuerySpec{
	Table: "member",
	Alias: "m",
	Columns: []string{
		"m.id AS member_id",
		"m.username AS username",
		"m.age AS age",
		"t.id AS team_id",
		"t.name AS team_name",
	},
	Joins: []repository.Join{{
		Kind:        repository.LeftJoin,
		Table:       "team",
		Alias:       "t",
		On:          "t.id = m.team_id",
		Cardinality: repository.ToOne,
	}},
	Sortable: map[string]repository.SortColumn{
		SortByID:       {Column: "m.id"},
		SortByUsername: {Column: "m.username", Nullable: true},
		SortByAge:      {Column: "m.age"},
		SortByTeamName: {Column: "t.name", Nullable: true},
	},
	TieBreaker: "m.id",
})

// MemberSearch pages members joined with their team.
type MemberSearch struct {
	db     bun.IDB
	logger database.Logger
}

func NewMemberSearch(db bun.IDB) *MemberSearch {
	return &MemberSearch{db: db, logger: database.GetLogger()}
}

// WithDB returns a search bound to db, typically a bun.Tx so that the page and
// its count read the same snapshot.
func (s *MemberSearch) WithDB(db bun.IDB) *MemberSearch {
	return &MemberSearch{db: db, logger: s.logger}
}

// Search returns one page of members matching cond. A nil cond matches every
// member. Invalid criteria or paging fail before any query runs; query
// errors are returned unchanged.
func (s *MemberSearch) Search(ctx context.Context, cond *MemberSearchCondition, page *types.PageRequest) (*types.PageResult[MemberTeamDto], error) {
	if err := errors.Join(cond.Validate(), memberTeamQuery.Validate(page)); err != nil {
		return nil, err
	}

	searchID := uuid.NewString()
	c := cond.Condition()
	s.logger.Debug("Member search started",
		"search_id", searchID,
		"where", c.String(),
		"offset", page.Offset,
		"limit", page.Limit,
	)

	result, err := memberTeamQuery.Page(ctx, s.db, c, page)
	if err != nil {
		return nil, err
	}
	_, hasTotal := result.TotalCount()
	s.logger.Debug("Member search finished", "search_id", searchID, "size", len(result.Items), "has_total", hasTotal)
	return result, nil
}

// List returns every member matching cond ordered by id.
func (s *MemberSearch) List(ctx context.Context, cond *MemberSearchCondition) ([]MemberTeamDto, error) {
	if err := cond.Validate(); err != nil {
		return nil, err
	}
	return memberTeamQuery.FetchAll(ctx, s.db, cond.Condition())
}
