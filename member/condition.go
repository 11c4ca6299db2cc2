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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tomoncle/sieve/predicate"
	"github.com/tomoncle/sieve/types"
)

// MemberSearchCondition holds optional member search criteria. A nil field
// is absent and restricts nothing; string fields also count as absent when
// blank.
type MemberSearchCondition struct {
	Username       *string `json:"username"`
	UsernamePrefix *string `json:"usernamePrefix"`
	TeamName       *string `json:"teamName"`
	AgeGoe         *int    `json:"ageGoe" validate:"omitempty,gte=0"`
	AgeLoe         *int    `json:"ageLoe" validate:"omitempty,gte=0"`
}

var memberConditionKeys = map[string]func(c *MemberSearchCondition, v string) error{
	"username":       func(c *MemberSearchCondition, v string) error { return setString(&c.Username, v) },
	"usernamePrefix": func(c *MemberSearchCondition, v string) error { return setString(&c.UsernamePrefix, v) },
	"teamName":       func(c *MemberSearchCondition, v string) error { return setString(&c.TeamName, v) },
	"ageGoe":         func(c *MemberSearchCondition, v string) error { return parseInt(&c.AgeGoe, v) },
	"ageLoe":         func(c *MemberSearchCondition, v string) error { return parseInt(&c.AgeLoe, v) },
}

// ParseMemberSearchCondition builds criteria from loose key/value input such
// as query parameters. Unknown keys and malformed numbers are validation
// errors; a key that is not given stays absent.
func ParseMemberSearchCondition(params map[string]string) (*MemberSearchCondition, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := &MemberSearchCondition{}
	var errs []error
	for _, k := range keys {
		set, ok := memberConditionKeys[k]
		if !ok {
			errs = append(errs, types.NewValidationError(k, "unknown filter field"))
			continue
		}
		if err := set(c, params[k]); err != nil {
			errs = append(errs, types.NewValidationError(k, err.Error()))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func setString(dst **string, v string) error {
	*dst = &v
	return nil
}

func parseInt(dst **int, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("not an integer: %q", v)
	}
	*dst = &n
	return nil
}

// Validate checks the age bounds. A nil condition is valid and matches
// every member.
func (c *MemberSearchCondition) Validate() error {
	if c == nil {
		return nil
	}
	errs := []error{types.ValidateStruct(c)}
	if c.AgeGoe != nil && c.AgeLoe != nil && *c.AgeGoe > *c.AgeLoe {
		errs = append(errs, types.NewValidationError("ageGoe",
			fmt.Sprintf("lower bound %d is greater than upper bound %d", *c.AgeGoe, *c.AgeLoe)))
	}
	return errors.Join(errs...)
}

// Condition composes the present criteria. It is pure and can be called any
// number of times.
func (c *MemberSearchCondition) Condition() predicate.Condition {
	if c == nil {
		return predicate.All
	}
	return predicate.Join(
		[]predicate.Fragment{
			predicate.EqIfNotEmpty("m.username", c.Username),
			predicate.PrefixIfNotEmpty("m.username", c.UsernamePrefix),
			predicate.EqIfNotEmpty("t.name", c.TeamName),
		},
		predicate.Range("m.age", c.AgeGoe, c.AgeLoe),
	)
}
