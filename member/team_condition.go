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
	"strings"

	"github.com/tomoncle/sieve/predicate"
)

// TeamSearchCondition filters teams by name and by having a member with a
// given username.
type TeamSearchCondition struct {
	Name           *string `json:"name"`
	MemberUsername *string `json:"memberUsername"`
}

// Condition filters on members with EXISTS so a team with several matching
// members is still returned once.
func (c *TeamSearchCondition) Condition() predicate.Condition {
	if c == nil {
		return predicate.All
	}
	return predicate.And(
		predicate.EqIfNotEmpty("t.name", c.Name),
		hasMember(c.MemberUsername),
	)
}

func hasMember(username *string) predicate.Fragment {
	if username == nil || strings.TrimSpace(*username) == "" {
		return predicate.Absent
	}
	return predicate.Exists(
		"SELECT 1 FROM member AS mx WHERE mx.team_id = t.id AND mx.username = ?", *username)
}
