// Package models defines the core domain models for Tally.
//
// # Identity
//
// Group members are identified by display name strings. Uniqueness within a
// group is enforced by the storage layer; the ledger engine treats names as
// opaque keys and never deduplicates.
//
// # Derived types
//
// Balance, SimplifiedDebt, and MemberBalance are never persisted. They are
// recomputed from the expense and settlement records on every query, so there
// is no incremental state to keep consistent.
//
// # Design principles
//
//  1. Amounts are float64 rounded to currency minor units; comparisons use a
//     0.01 tolerance throughout.
//  2. Split policies are a closed enum (SplitType), never free-form strings.
//  3. Relationships use ID strings instead of pointers to avoid circular
//     references.
package models
