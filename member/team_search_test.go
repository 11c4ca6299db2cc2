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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/sieve/types"
)

func TestTeamSearch(t *testing.T) {
	f := newFixture(t)
	f.add(t, NewMember("member3", 31, f.teamA))
	f.add(t, NewMember("member3", 32, f.teamA))
	search := NewTeamSearch(f.db)
	ctx := context.Background()

	t.Run("to-many filter does not duplicate teams", func(t *testing.T) {
		f.counter.Reset()
		result, err := search.Search(ctx, &TeamSearchCondition{MemberUsername: ptr("member3")}, types.NewPageRequest(0, 10))
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "teamA", result.Items[0].Name)
		assert.EqualValues(t, 4, result.Items[0].MemberCount)
		assert.Equal(t, "teamB", result.Items[1].Name)
		assert.EqualValues(t, 2, result.Items[1].MemberCount)
		assert.EqualValues(t, 2, *result.Total)
		assert.Equal(t, 1, f.counter.Total())
	})

	t.Run("ordered by member count", func(t *testing.T) {
		result, err := search.Search(ctx, nil, types.NewPageRequest(0, 1, types.Asc(SortTeamByMemberCount)))
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "teamB", result.Items[0].Name)
		assert.EqualValues(t, 2, *result.Total)
	})

	t.Run("name and member", func(t *testing.T) {
		result, err := search.Search(ctx, &TeamSearchCondition{Name: ptr("teamB"), MemberUsername: ptr("member1")}, types.NewPageRequest(0, 10))
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.EqualValues(t, 0, *result.Total)
	})

	t.Run("invalid page", func(t *testing.T) {
		_, err := search.Search(ctx, nil, types.NewPageRequest(0, 10, types.Asc("members")))
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}
