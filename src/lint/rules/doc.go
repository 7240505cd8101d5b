// Package rules contains all built-in lint rules.
// Import this package to register all rules via their init() functions.
//
// Rules cover correctness concerns only. Style concerns (quotes,
// semicolons, whitespace, indentation) belong to the formatter and are
// deliberately absent here so the two never produce conflicting
// diagnostics on the same line.
package rules
