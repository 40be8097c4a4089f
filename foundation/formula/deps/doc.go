// Package deps extracts the symbols a formula reads before it can be
// evaluated: variables, data matrix cells and ranges.
package deps
