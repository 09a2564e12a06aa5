// Package sanitizer normalizes guest-supplied input before validation and storage.
//
// All functions are idempotent. Invalid input is returned in a form the validators
// will reject rather than silently rewritten into something plausible.
//
// Normalization includes:
//   - Phone numbers: E.164 (+[country][number]), national numbers resolved against a default region
//   - Emails: trimmed and lowercased
//   - Names: whitespace collapsed, surrounding spaces trimmed
//   - Free text: control characters removed, whitespace collapsed
package sanitizer
