// Package database provides Bun connection management for MySQL, PostgreSQL
// and SQLite, YAML and environment configuration, a model registry used to
// create tables, query hooks for slow query logging and query counting, and
// SQL error classification.
package database
