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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/sieve/types"
)

func TestMemberConditionComposition(t *testing.T) {
	cases := []struct {
		name string
		cond *MemberSearchCondition
		want string
	}{
		{"nil", nil, "TRUE"},
		{"all absent", &MemberSearchCondition{}, "TRUE"},
		{"team and range", &MemberSearchCondition{TeamName: ptr("teamB"), AgeGoe: ptr(35), AgeLoe: ptr(40)}, "t.name = ? AND m.age >= ? AND m.age <= ?"},
		{"upper only", &MemberSearchCondition{AgeLoe: ptr(40)}, "m.age <= ?"},
		{"username and prefix", &MemberSearchCondition{Username: ptr("a"), UsernamePrefix: ptr("a")}, "m.username = ? AND m.username LIKE ?"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.cond.Condition()
			assert.Equal(t, tc.want, c.String())
			assert.Equal(t, c, tc.cond.Condition(), "composition is repeatable")
		})
	}
}

func TestMemberConditionValidate(t *testing.T) {
	assert.NoError(t, (*MemberSearchCondition)(nil).Validate())
	assert.NoError(t, (&MemberSearchCondition{AgeGoe: ptr(40), AgeLoe: ptr(40)}).Validate())

	err := (&MemberSearchCondition{AgeGoe: ptr(41), AgeLoe: ptr(40)}).Validate()
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "ageGoe", verr.Field)

	err = (&MemberSearchCondition{AgeLoe: ptr(-5)}).Validate()
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "ageLoe", verr.Field)
}

func TestParseMemberSearchCondition(t *testing.T) {
	c, err := ParseMemberSearchCondition(map[string]string{
		"teamName": "teamB",
		"ageGoe":   "35",
		"ageLoe":   " 40 ",
	})
	require.NoError(t, err)
	assert.Nil(t, c.Username)
	assert.Nil(t, c.UsernamePrefix)
	assert.Equal(t, "teamB", *c.TeamName)
	assert.Equal(t, 35, *c.AgeGoe)
	assert.Equal(t, 40, *c.AgeLoe)

	c, err = ParseMemberSearchCondition(nil)
	require.NoError(t, err)
	assert.True(t, c.Condition().IsUniversal())

	_, err = ParseMemberSearchCondition(map[string]string{"nickname": "x", "ageGoe": "old"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Contains(t, err.Error(), "nickname")
	assert.Contains(t, err.Error(), "ageGoe")
}

func TestTeamConditionUsesExists(t *testing.T) {
	c := (&TeamSearchCondition{MemberUsername: ptr("member3")}).Condition()
	require.Equal(t, 1, c.Len())
	assert.False(t, c.References("mx"), "the subquery alias is not a joined alias")
	assert.Contains(t, c.String(), "EXISTS (")

	assert.True(t, (&TeamSearchCondition{MemberUsername: ptr(" ")}).Condition().IsUniversal())
}
