// Package member implements member and team search over the predicate and
// repository packages: optional criteria, paged projections joined with the
// team, and a few aggregates.
package member
