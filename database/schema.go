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

package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateRegisteredTables creates a table for every registered model that
// does not have one yet, in priority order.
func CreateRegisteredTables(ctx context.Context, db bun.IDB, logger Logger) error {
	return CreateTables(ctx, db, logger, RegisteredModelInstances()...)
}

// CreateTables runs CREATE TABLE IF NOT EXISTS for each model in order.
func CreateTables(ctx context.Context, db bun.IDB, logger Logger, models ...interface{}) error {
	if logger == nil {
		logger = GetLogger()
	}
	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table %T: %w", model, err)
		}
		logger.Debug("Table ensured", "model", modelName(model))
	}
	return nil
}
