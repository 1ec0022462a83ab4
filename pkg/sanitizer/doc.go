// Package sanitizer normalizes user input before validation and submission.
//
// All normalization functions are idempotent. Invalid input is handed back
// in a shape the validator will reject rather than silently rewritten.
//
// Normalization includes:
//   - Phone numbers: E.164 format when the number parses
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Services: trimmed, lower-cased categories
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
