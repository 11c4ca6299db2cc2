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

// MemberTeamDto is one member row with its team flattened in. TeamID and
// TeamName are nil for members without a team.
type MemberTeamDto struct {
	MemberID int64   `bun:"member_id" json:"memberId"`
	Username *string `bun:"username" json:"username"`
	Age      int     `bun:"age" json:"age"`
	TeamID   *int64  `bun:"team_id" json:"teamId"`
	TeamName *string `bun:"team_name" json:"teamName"`
}

type TeamDto struct {
	TeamID      int64  `bun:"team_id" json:"teamId"`
	Name        string `bun:"name" json:"name"`
	MemberCount int64  `bun:"member_count" json:"memberCount"`
}

// AgeSummary aggregates member ages. The aggregates are zero when no member
// matches.
type AgeSummary struct {
	Count int64   `bun:"member_count" json:"count"`
	Sum   int64   `bun:"age_sum" json:"sum"`
	Avg   float64 `bun:"age_avg" json:"avg"`
	Max   int     `bun:"age_max" json:"max"`
	Min   int     `bun:"age_min" json:"min"`
}

type TeamAverageAge struct {
	TeamName string  `bun:"team_name" json:"teamName"`
	AvgAge   float64 `bun:"avg_age" json:"avgAge"`
}
