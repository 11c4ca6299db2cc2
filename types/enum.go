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

package types

import "strings"

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by ordering types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// SortDirection is the direction of a single ORDER BY term.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

var _ BaseEnum = Ascending

func (d SortDirection) IsValid() bool { return d == Ascending || d == Descending }

func (d SortDirection) Number() int {
	if !d.IsValid() {
		return IllegalValue
	}
	return int(d)
}

// String returns the SQL keyword for the direction.
func (d SortDirection) String() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return IllegalName
	}
}

func (d SortDirection) Name() string { return strings.ToLower(d.String()) }

func (d SortDirection) Desc() string {
	switch d {
	case Ascending:
		return "smallest first"
	case Descending:
		return "largest first"
	default:
		return IllegalDesc
	}
}

// NullOrdering decides where NULL values of a nullable sort attribute land.
// NullsDefault behaves like NullsLast for both directions.
type NullOrdering int

const (
	NullsDefault NullOrdering = iota
	NullsFirst
	NullsLast
)

var _ BaseEnum = NullsDefault

func (n NullOrdering) IsValid() bool { return n >= NullsDefault && n <= NullsLast }

func (n NullOrdering) Number() int {
	if !n.IsValid() {
		return IllegalValue
	}
	return int(n)
}

func (n NullOrdering) String() string {
	switch n {
	case NullsDefault:
		return "NULLS DEFAULT"
	case NullsFirst:
		return "NULLS FIRST"
	case NullsLast:
		return "NULLS LAST"
	default:
		return IllegalName
	}
}

func (n NullOrdering) Name() string {
	switch n {
	case NullsDefault:
		return "default"
	case NullsFirst:
		return "first"
	case NullsLast:
		return "last"
	default:
		return IllegalName
	}
}

func (n NullOrdering) Desc() string {
	switch n {
	case NullsDefault:
		return "nulls after non-null values"
	case NullsFirst:
		return "nulls before non-null values"
	case NullsLast:
		return "nulls after non-null values"
	default:
		return IllegalDesc
	}
}

// Resolve maps NullsDefault to the effective placement.
func (n NullOrdering) Resolve() NullOrdering {
	if n == NullsFirst {
		return NullsFirst
	}
	return NullsLast
}
