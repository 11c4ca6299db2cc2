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

import "errors"

var (
	// ErrNotFound is returned by single-entity lookups that match no row.
	ErrNotFound = errors.New("repository: entity not found")

	// ErrFanOutJoin rejects a to-many join in a paged query. Filter on the
	// to-many side with predicate.Exists instead.
	ErrFanOutJoin = errors.New("repository: to-many join would multiply rows")

	// ErrInvalidSpec reports a malformed QuerySpec.
	ErrInvalidSpec = errors.New("repository: invalid query spec")
)
