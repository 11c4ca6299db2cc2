// Package predicate turns optional filter values into WHERE fragments and
// composes them into a single conjunctive condition for Bun select queries.
package predicate
