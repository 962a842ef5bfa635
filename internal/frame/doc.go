// Package frame provides the in-memory table that the cleaning pipeline
// reads and produces: an ordered set of named columns of equal length, each
// holding either numeric values or text.
//
// Every table carries the identity of its rows. A freshly built table numbers
// its rows 0..n-1; filtering keeps the surviving identities, so a cleaned
// table can always be joined back to the data it came from.
//
// Tables are treated as values. Operations that remove rows or replace a
// column return a new table and leave the receiver untouched.
package frame
