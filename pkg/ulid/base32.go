package ulid

import "fmt"

// Alphabet is the ULID base32 alphabet, in digit order. It omits I, L, O
// and U to avoid visually ambiguous identifiers.
const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	// TimeLen is the encoded length of the timestamp part.
	TimeLen = 10

	// RandLen is the encoded length of the random part.
	RandLen = 16

	// EncodedLen is the length of a complete ULID.
	EncodedLen = TimeLen + RandLen

	// MaxTime is the largest encodable timestamp: 2^48-1 milliseconds.
	MaxTime = int64(1)<<48 - 1

	maxDigit = 31
)

// reverse maps an alphabet character back to its digit value.
// 0xFF marks characters outside the alphabet.
var reverse = func() (t [256]byte) {
	for i := range t {
		t[i] = 0xFF
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = byte(i)
	}
	return t
}()

// EncodeTime encodes a millisecond timestamp as 10 base32 characters,
// most significant digit first, zero padded to full width.
// Timestamps outside [0, MaxTime] fail with *InvalidTimestampError.
func EncodeTime(ms int64) (string, error) {
	if ms < 0 {
		return "", &InvalidTimestampError{Time: ms, Constraint: "timestamp is negative"}
	}
	if ms > MaxTime {
		return "", &InvalidTimestampError{Time: ms, Constraint: "timestamp exceeds 2^48-1"}
	}

	var buf [TimeLen]byte
	t := uint64(ms)
	for i := TimeLen - 1; i >= 0; i-- {
		buf[i] = Alphabet[t&maxDigit]
		t >>= 5
	}
	return string(buf[:]), nil
}

// DecodeTime is the inverse of EncodeTime. The input must be exactly 10
// alphabet characters and must decode to a value within [0, MaxTime].
func DecodeTime(s string) (int64, error) {
	if len(s) != TimeLen {
		return 0, fmt.Errorf("time encoding has %d characters, want %d: %w", len(s), TimeLen, ErrNotBase32)
	}

	var t uint64
	for i := 0; i < TimeLen; i++ {
		d := reverse[s[i]]
		if d == 0xFF {
			return 0, fmt.Errorf("character %q at position %d: %w", s[i], i, ErrNotBase32)
		}
		t = t<<5 | uint64(d)
	}

	if t > uint64(MaxTime) {
		return 0, &InvalidTimestampError{Time: int64(t), Constraint: "timestamp exceeds 2^48-1"}
	}
	return int64(t), nil
}

// EncodeRandom draws 16 uniform digits from rand and encodes them as base32.
// rand must return a uniform integer in the inclusive range [min, max].
func EncodeRandom(rand func(min, max int) int) string {
	var buf [RandLen]byte
	for i := range buf {
		buf[i] = Alphabet[rand(0, maxDigit)]
	}
	return string(buf[:])
}

// Increment returns the lexicographically next base32 string of the same
// length, carrying leftward past maxed-out digits. A character outside the
// alphabet fails with ErrNotBase32. If every digit is already at its
// maximum there is no next string of that length; Increment fails with
// ErrSequenceExhausted rather than wrapping around.
func Increment(s string) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty string: %w", ErrNotBase32)
	}

	digits := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		d := reverse[s[i]]
		if d == 0xFF {
			return "", fmt.Errorf("character %q at position %d: %w", s[i], i, ErrNotBase32)
		}
		digits[i] = d
	}

	if !incrementDigits(digits) {
		return "", ErrSequenceExhausted
	}
	return encodeDigits(digits), nil
}

// incrementDigits advances a digit-index slice in place, right to left.
// It reports false when every digit was at maxDigit; the slice is then all
// zeros, and it is the caller's job to decide what overflow means.
func incrementDigits(digits []byte) bool {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] == maxDigit {
			digits[i] = 0
			continue
		}
		digits[i]++
		return true
	}
	return false
}

func encodeDigits(digits []byte) string {
	buf := make([]byte, len(digits))
	for i, d := range digits {
		buf[i] = Alphabet[d]
	}
	return string(buf)
}
