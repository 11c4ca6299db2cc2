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

package repository

import (
	"context"

	"github.com/tomoncle/sieve/types"
)

// TotalFromPage decides whether a fetched page already proves the total
// number of matches.
//
// A short page that is not empty proves total = offset + size. So does an
// empty first page (total 0). A full page is ambiguous, and an empty page past
// the first may have an offset beyond the match set, so neither proves
// anything and ok is false. Reporting offset + 0 there would be wrong
// whenever the offset is past the last match.
func TotalFromPage(offset, limit, size int) (total int64, ok bool) {
	if size < limit && (size > 0 || offset == 0) {
		return int64(offset + size), true
	}
	return 0, false
}

// maxPagePrealloc caps the result capacity reserved up front. Limits are
// unbounded, so the slice grows with the rows actually scanned.
const maxPagePrealloc = 64

func pageCapacity(limit int) int {
	return max(0, min(limit, maxPagePrealloc))
}

// CountFunc runs a dedicated count query.
type CountFunc func(ctx context.Context) (int64, error)

// ResolveTotal sets result.Total from the page when the page proves it, and
// otherwise runs count unless the request skips totals. counted reports
// whether count ran.
func ResolveTotal[T any](ctx context.Context, page *types.PageRequest, result *types.PageResult[T], count CountFunc) (counted bool, err error) {
	if total, ok := TotalFromPage(page.Offset, page.Limit, len(result.Items)); ok {
		result.SetTotal(total)
		return false, nil
	}
	if page.SkipTotal {
		return false, nil
	}
	total, err := count(ctx)
	if err != nil {
		return true, err
	}
	result.SetTotal(total)
	return true, nil
}
