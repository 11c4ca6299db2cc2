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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrders(t *testing.T) {
	orders, err := ParseOrders("username desc nulls first, age,teamName ASC NULLS LAST")
	require.NoError(t, err)
	assert.Equal(t, []Order{
		Desc("username").NullsFirst(),
		Asc("age"),
		Asc("teamName").NullsLast(),
	}, orders)

	orders, err = ParseOrders("  ")
	require.NoError(t, err)
	assert.Nil(t, orders)

	_, err = ParseOrders("age sideways, , name nulls")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "age sideways")
	assert.Contains(t, err.Error(), "empty sort term")
	assert.Contains(t, err.Error(), "name nulls")
}

func TestPageRequestValidate(t *testing.T) {
	assert.NoError(t, NewPageRequest(0, 1).Validate())
	assert.NoError(t, NewPageRequestOfPage(3, 10, Asc("age")).Validate())

	cases := []struct {
		name  string
		page  *PageRequest
		field string
	}{
		{"nil", nil, "page"},
		{"zero limit", NewPageRequest(0, 0), "limit"},
		{"negative offset", NewPageRequest(-1, 5), "offset"},
		{"empty sort field", NewPageRequest(0, 5, Order{}), "orders[0].field"},
		{"unknown direction", NewPageRequest(0, 5, Order{Field: "age", Direction: 3}), "orders[0].direction"},
		{"unknown nulls", NewPageRequest(0, 5, Order{Field: "age", Nulls: 9}), "orders[0].nulls"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.page.Validate()
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestPageRequestOfPage(t *testing.T) {
	p := NewPageRequestOfPage(3, 10)
	assert.Equal(t, 20, p.Offset)
	assert.Equal(t, 10, p.Limit)

	skip := p.WithoutTotal()
	assert.True(t, skip.SkipTotal)
	assert.False(t, p.SkipTotal, "WithoutTotal copies")
}

func TestPageResult(t *testing.T) {
	page := NewPageRequest(0, 2)
	r := NewPageResult[int](page, nil)
	assert.NotNil(t, r.Items)
	assert.Empty(t, r.Items)
	_, ok := r.TotalCount()
	assert.False(t, ok)
	assert.False(t, r.HasNext())

	r = NewPageResult(page, []int{1, 2})
	assert.True(t, r.HasNext(), "a full page without total may have more")
	r.SetTotal(2)
	total, ok := r.TotalCount()
	assert.True(t, ok)
	assert.EqualValues(t, 2, total)
	assert.False(t, r.HasNext())
}

func TestEnums(t *testing.T) {
	assert.Equal(t, "DESC", Descending.String())
	assert.Equal(t, "asc", Ascending.Name())
	assert.Equal(t, IllegalValue, SortDirection(5).Number())
	assert.Equal(t, NullsLast, NullsDefault.Resolve())
	assert.Equal(t, NullsFirst, NullsFirst.Resolve())
	assert.Equal(t, "first", NullsFirst.Name())
}
