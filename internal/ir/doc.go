// Package ir provides the catalog intermediate representation for vecwrap.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the routine catalog the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Descriptors are created once by the compiler and never mutated
//   - Item dimensions use 0 for a wildcard ("*") axis
//   - All JSON tags use snake_case
//   - Catalog identity is computed from canonical JSON only
package ir
