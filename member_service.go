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

package sieve

import (
	"context"
	"sync"

	"github.com/tomoncle/sieve/database"
	"github.com/tomoncle/sieve/member"
	"github.com/tomoncle/sieve/types"
	"github.com/uptrace/bun"
)

// MemberService is the search facade over members and teams.
type MemberService interface {
	// Search returns a page of members joined with their team.
	Search(ctx context.Context, cond *member.MemberSearchCondition, page *types.PageRequest) (*types.PageResult[member.MemberTeamDto], error)

	// SearchTx runs Search inside tx so the page and its count share a snapshot.
	SearchTx(ctx context.Context, tx bun.Tx, cond *member.MemberSearchCondition, page *types.PageRequest) (*types.PageResult[member.MemberTeamDto], error)

	// SearchTeams returns a page of teams with their member counts.
	SearchTeams(ctx context.Context, cond *member.TeamSearchCondition, page *types.PageRequest) (*types.PageResult[member.TeamDto], error)

	// List returns every member matching cond.
	List(ctx context.Context, cond *member.MemberSearchCondition) ([]member.MemberTeamDto, error)

	FindByUsername(ctx context.Context, username string) ([]*member.Member, error)

	AgeSummary(ctx context.Context, cond *member.MemberSearchCondition) (*member.AgeSummary, error)

	// TeamAverageAges returns per-team average ages, optionally only those
	// above a threshold.
	TeamAverageAges(ctx context.Context, above *float64) ([]member.TeamAverageAge, error)

	// Members and Teams expose the entity services used to store data.
	Members() Service[member.Member]
	Teams() Service[member.Team]
}

type memberServiceImpl struct {
	once       sync.Once
	db         bun.IDB
	search     *member.MemberSearch
	teamSearch *member.TeamSearch
	repo       *member.Repository
	members    Service[member.Member]
	teams      Service[member.Team]
}

// NewMemberService returns a MemberService on the global database. The
// connection is looked up on first use.
func NewMemberService() MemberService {
	return &memberServiceImpl{
		members: NewService[member.Member](),
		teams:   NewService[member.Team](),
	}
}

func (s *memberServiceImpl) init() {
	s.once.Do(func() {
		s.db = database.GetDB()
		s.search = member.NewMemberSearch(s.db)
		s.teamSearch = member.NewTeamSearch(s.db)
		s.repo = member.NewRepository(s.db)
	})
}

func (s *memberServiceImpl) Search(ctx context.Context, cond *member.MemberSearchCondition, page *types.PageRequest) (*types.PageResult[member.MemberTeamDto], error) {
	s.init()
	return s.search.Search(ctx, cond, page)
}

func (s *memberServiceImpl) SearchTx(ctx context.Context, tx bun.Tx, cond *member.MemberSearchCondition, page *types.PageRequest) (*types.PageResult[member.MemberTeamDto], error) {
	s.init()
	return s.search.WithDB(tx).Search(ctx, cond, page)
}

func (s *memberServiceImpl) SearchTeams(ctx context.Context, cond *member.TeamSearchCondition, page *types.PageRequest) (*types.PageResult[member.TeamDto], error) {
	s.init()
	return s.teamSearch.Search(ctx, cond, page)
}

func (s *memberServiceImpl) List(ctx context.Context, cond *member.MemberSearchCondition) ([]member.MemberTeamDto, error) {
	s.init()
	return s.search.List(ctx, cond)
}

func (s *memberServiceImpl) FindByUsername(ctx context.Context, username string) ([]*member.Member, error) {
	s.init()
	return s.repo.FindByUsername(ctx, username)
}

func (s *memberServiceImpl) AgeSummary(ctx context.Context, cond *member.MemberSearchCondition) (*member.AgeSummary, error) {
	s.init()
	return s.repo.AgeSummary(ctx, cond)
}

func (s *memberServiceImpl) TeamAverageAges(ctx context.Context, above *float64) ([]member.TeamAverageAge, error) {
	s.init()
	return s.repo.TeamAverageAges(ctx, above)
}

func (s *memberServiceImpl) Members() Service[member.Member] { return s.members }

func (s *memberServiceImpl) Teams() Service[member.Team] { return s.teams }
