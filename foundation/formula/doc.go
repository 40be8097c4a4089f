// Package formula is the entry point to the formula language: parsing,
// dependency extraction and the reactive engine. The subpackages hold the
// implementation.
package formula
