// Package abi provides internal utilities shared by the primitive and codec
// packages.
//
// # Contents
//
//   - coerce.go: Coercion from Go numbers (including JSON and YAML decoded
//     values) to fixed-width wire integers
//   - helpers.go: Type naming and overflow-checked size arithmetic
//
// This package is internal to the module.
package abi
