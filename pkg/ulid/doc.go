// Package ulid generates Universally Unique Lexicographically Sortable
// Identifiers (https://github.com/ulid/spec).
//
// A ULID is a 26 character string: the first 10 characters encode a 48-bit
// millisecond timestamp, the remaining 16 encode 80 bits of randomness.
// Both parts use Crockford's base32 alphabet (no I, L, O or U), so byte-wise
// string comparison orders identifiers by creation time.
//
// The package takes its clock and its randomness as plain functions supplied
// at construction (see Deps). Nothing here probes the host environment;
// pkg/ulid/sysenv provides the reference resolver for that.
package ulid
