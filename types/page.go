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
	"fmt"
	"strings"
)

// Order is one ORDER BY term. Field is a sort key that the query resolves to a
// column, never a raw column expression.
type Order struct {
	Field     string        `json:"field" validate:"required"`
	Direction SortDirection `json:"direction"`
	Nulls     NullOrdering  `json:"nulls"`
}

// Asc orders field ascending.
func Asc(field string) Order { return Order{Field: field, Direction: Ascending} }

// Desc orders field descending.
func Desc(field string) Order { return Order{Field: field, Direction: Descending} }

// NullsFirst returns a copy of o that places NULLs before other values.
func (o Order) NullsFirst() Order {
	o.Nulls = NullsFirst
	return o
}

// NullsLast returns a copy of o that places NULLs after other values.
func (o Order) NullsLast() Order {
	o.Nulls = NullsLast
	return o
}

func (o Order) String() string {
	return fmt.Sprintf("%s %s %s", o.Field, o.Direction, o.Nulls)
}

// ParseOrders parses a comma separated sort expression such as
// "username desc nulls first, age". Direction defaults to ascending.
func ParseOrders(expr string) ([]Order, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	var (
		orders []Order
		errs   []error
	)
	for _, term := range strings.Split(expr, ",") {
		words := strings.Fields(term)
		if len(words) == 0 {
			errs = append(errs, NewValidationError("orders", "empty sort term"))
			continue
		}
		o := Asc(words[0])
		rest := make([]string, len(words)-1)
		for i, w := range words[1:] {
			rest[i] = strings.ToLower(w)
		}
		if len(rest) > 0 && (rest[0] == "asc" || rest[0] == "desc") {
			if rest[0] == "desc" {
				o.Direction = Descending
			}
			rest = rest[1:]
		}
		switch {
		case len(rest) == 0:
		case len(rest) == 2 && rest[0] == "nulls" && rest[1] == "first":
			o.Nulls = NullsFirst
		case len(rest) == 2 && rest[0] == "nulls" && rest[1] == "last":
			o.Nulls = NullsLast
		default:
			errs = append(errs, NewValidationError("orders", fmt.Sprintf("malformed sort term %q", strings.TrimSpace(term))))
			continue
		}
		orders = append(orders, o)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return orders, nil
}

// PageRequest describes an offset/limit window and its ordering.
// SkipTotal asks the query not to run a count query; the total is still
// reported when the page itself proves it.
type PageRequest struct {
	Offset    int     `json:"offset" validate:"gte=0"`
	Limit     int     `json:"limit" validate:"gt=0"`
	Orders    []Order `json:"orders" validate:"dive"`
	SkipTotal bool    `json:"skip_total"`
}

// NewPageRequest constructs a PageRequest for an explicit offset and limit.
func NewPageRequest(offset int, limit int, orders ...Order) *PageRequest {
	return &PageRequest{Offset: offset, Limit: limit, Orders: orders}
}

// NewPageRequestOfPage constructs a PageRequest from a 1-based page number.
func NewPageRequestOfPage(page int, pageSize int, orders ...Order) *PageRequest {
	return NewPageRequest((page-1)*pageSize, pageSize, orders...)
}

// WithoutTotal returns a copy of p with SkipTotal set.
func (p *PageRequest) WithoutTotal() *PageRequest {
	c := *p
	c.SkipTotal = true
	return &c
}

// Validate rejects negative offsets, non-positive limits and malformed orders.
// A non-positive limit is never treated as "no limit".
func (p *PageRequest) Validate() error {
	if p == nil {
		return NewValidationError("page", "is required")
	}
	var errs []error
	if err := ValidateStruct(p); err != nil {
		errs = append(errs, err)
	}
	for i, o := range p.Orders {
		if !o.Direction.IsValid() {
			errs = append(errs, NewValidationError(fmt.Sprintf("orders[%d].direction", i), "unknown sort direction"))
		}
		if !o.Nulls.IsValid() {
			errs = append(errs, NewValidationError(fmt.Sprintf("orders[%d].nulls", i), "unknown null ordering"))
		}
	}
	return errors.Join(errs...)
}

// PageResult holds one page of items and, when known, the total match count.
type PageResult[T any] struct {
	Items  []T    `json:"items"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
	Total  *int64 `json:"total,omitempty"`
}

// NewPageResult wraps items for the window described by page. A nil slice is
// replaced by an empty one.
func NewPageResult[T any](page *PageRequest, items []T) *PageResult[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return &PageResult[T]{Items: items, Offset: page.Offset, Limit: page.Limit}
}

// SetTotal records the total match count.
func (r *PageResult[T]) SetTotal(total int64) {
	r.Total = &total
}

// TotalCount returns the total and whether it was computed.
func (r *PageResult[T]) TotalCount() (int64, bool) {
	if r.Total == nil {
		return 0, false
	}
	return *r.Total, true
}

// HasNext reports whether rows exist beyond this page. Without a total it
// falls back to whether the page was full.
func (r *PageResult[T]) HasNext() bool {
	if total, ok := r.TotalCount(); ok {
		return int64(r.Offset+len(r.Items)) < total
	}
	return len(r.Items) == r.Limit
}
