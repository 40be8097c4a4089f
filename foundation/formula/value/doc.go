// File: doc.go
// Title: Formula Values Package Documentation
// Description: Package documentation for runtime values and futures.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

/*
Package value defines the runtime values of the formula language.

A Value is one of nil, float64, string, bool, []Value, *Object, Matrix,
Signature or *Future. Host data enters through Normalize, which maps every
Go number kind to float64 and nested slices to a Matrix:

	m := value.Normalize([][]int{{0, 0}, {0, 0}, {0, 10}}).(value.Matrix)
	v, _ := m.At(2, 1) // 10.0

Functions produce values asynchronously by returning a *Future:

	return value.Go(ctx, func(ctx context.Context) (value.Value, error) {
		return fetch(ctx)
	}), nil
*/
package value
