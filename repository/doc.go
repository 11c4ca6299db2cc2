// Package repository runs paged queries over composed predicates. PagedQuery
// fetches flat projections for a declared QuerySpec and asks for a total count
// only when the fetched page cannot prove it. Repository is a generic Bun
// model repository for CRUD and entity pages.
package repository
