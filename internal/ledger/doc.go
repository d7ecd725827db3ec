// Package ledger implements the expense-sharing engine: share allocation,
// net balance computation, debt simplification, and the redistribution of
// historical expenses when a member leaves a group.
//
// Every function in this package is pure. Inputs are in-memory records,
// outputs are complete values or a validation error; nothing here performs
// I/O, mutates its arguments, or keeps state between calls. Amounts are
// float64 in currency major units, rounded to two decimals, and all
// comparisons use a 0.01 tolerance. Wherever rounding can leave a cent-level
// residue, the last member in iteration order absorbs it so that share
// amounts always sum exactly to the expense total.
package ledger
