// File: doc.go
// Title: Package Documentation for mathx
// Description: Financial calculations on float64 for formula functions.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with decimal arithmetic and business functions
// - 2025-10-18 v0.3.0: Reduced to float64 finance helpers backing the formula built-ins

// Package mathx provides the business calculations behind the financial
// formula functions: present and future value, loan payments, compound
// interest, return on investment and break-even points.
//
// Rates are fractions (0.05 for 5 percent) except where a function
// documents percentages. Invalid inputs return structured errors with the
// INVALID_ARGUMENT or DIVISION_BY_ZERO code.
package mathx
