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
	"github.com/tomoncle/sieve/database"
	"github.com/uptrace/bun"
)

type Team struct {
	bun.BaseModel `bun:"table:team,alias:t"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`
}

// Member belongs to at most one team. Username is nullable so that null
// ordering can be exercised.
type Member struct {
	bun.BaseModel `bun:"table:member,alias:m"`

	ID       int64   `bun:"id,pk,autoincrement" json:"id"`
	Username *string `bun:"username" json:"username"`
	Age      int     `bun:"age,notnull" json:"age"`
	TeamID   *int64  `bun:"team_id" json:"teamId"`
}

func NewTeam(name string) *Team {
	return &Team{Name: name}
}

// NewMember returns an unsaved member. team may be nil or unsaved; only a
// saved team's id is copied.
func NewMember(username string, age int, team *Team) *Member {
	m := &Member{Username: &username, Age: age}
	m.ChangeTeam(team)
	return m
}

func (m *Member) ChangeTeam(team *Team) {
	if team == nil || team.ID == 0 {
		m.TeamID = nil
		return
	}
	id := team.ID
	m.TeamID = &id
}

func init() {
	RegisterModels()
}

// RegisterModels adds Team and Member to the database model registry so that
// EnsureSchema creates their tables, team first.
func RegisterModels() {
	database.RegisteredModel(database.NewModelAdapter((*Team)(nil), 10))
	database.RegisteredModel(database.NewModelAdapter((*Member)(nil), 20))
}
