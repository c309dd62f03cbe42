package ulid

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestAlphabetOrdering(t *testing.T) {
	if got := Alphabet[0]; got != '0' {
		t.Fatalf("alphabet digit 0: got %q", got)
	}
	if got := Alphabet[31]; got != 'Z' {
		t.Fatalf("alphabet digit 31: got %q", got)
	}
	for _, c := range "ILOU" {
		if strings.ContainsRune(Alphabet, c) {
			t.Fatalf("alphabet must not contain %q", c)
		}
	}
	if !sortedStrictly(Alphabet) {
		t.Fatalf("alphabet must be in ascending byte order for lexicographic sorting")
	}
}

func sortedStrictly(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] >= s[i] {
			return false
		}
	}
	return true
}

func TestEncodeTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0000000000"},
		{1000, "00000000Z8"},
		{1469918176385, "01ARYZ6S41"},
		{MaxTime, "7ZZZZZZZZZ"},
	}

	for _, tt := range tests {
		got, err := EncodeTime(tt.ms)
		if err != nil {
			t.Fatalf("EncodeTime(%d): %v", tt.ms, err)
		}
		if got != tt.want {
			t.Errorf("EncodeTime(%d): got %q, want %q", tt.ms, got, tt.want)
		}
		if len(got) != TimeLen {
			t.Errorf("EncodeTime(%d): length %d, want %d", tt.ms, len(got), TimeLen)
		}
	}
}

func TestEncodeTimeRejectsOutOfRange(t *testing.T) {
	for _, ms := range []int64{-1, MaxTime + 1} {
		_, err := EncodeTime(ms)
		var its *InvalidTimestampError
		if !errors.As(err, &its) {
			t.Fatalf("EncodeTime(%d): got %v, want *InvalidTimestampError", ms, err)
		}
		if its.Constraint == "" {
			t.Errorf("EncodeTime(%d): error must carry the violated constraint", ms)
		}
	}
}

func TestTimeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	check := func(ms int64) {
		enc, err := EncodeTime(ms)
		if err != nil {
			t.Fatalf("encode %d: %v", ms, err)
		}
		dec, err := DecodeTime(enc)
		if err != nil {
			t.Fatalf("decode %q: %v", enc, err)
		}
		if dec != ms {
			t.Fatalf("round trip %d: got %d via %q", ms, dec, enc)
		}
	}

	check(0)
	check(1)
	check(MaxTime)
	for i := 0; i < 1000; i++ {
		check(rng.Int63n(MaxTime + 1))
	}
}

func TestDecodeTimeRejects(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrNotBase32},
		{"123", ErrNotBase32},
		{"01ARYZ6S4L", ErrNotBase32}, // L is not in the alphabet
		{"01ARYZ6S4!", ErrNotBase32},
	}
	for _, tt := range tests {
		if _, err := DecodeTime(tt.in); !errors.Is(err, tt.want) {
			t.Errorf("DecodeTime(%q): got %v, want %v", tt.in, err, tt.want)
		}
	}

	// 8ZZZZZZZZZ decodes above 2^48-1.
	_, err := DecodeTime("8ZZZZZZZZZ")
	var its *InvalidTimestampError
	if !errors.As(err, &its) {
		t.Fatalf("DecodeTime overflow: got %v, want *InvalidTimestampError", err)
	}
}

func TestEncodeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	uniform := func(min, max int) int {
		if min != 0 || max != 31 {
			t.Fatalf("unexpected range [%d, %d]", min, max)
		}
		return min + rng.Intn(max-min+1)
	}

	for i := 0; i < 100; i++ {
		got := EncodeRandom(uniform)
		if len(got) != RandLen {
			t.Fatalf("length %d, want %d", len(got), RandLen)
		}
		for j := 0; j < len(got); j++ {
			if !strings.ContainsRune(Alphabet, rune(got[j])) {
				t.Fatalf("%q contains non-alphabet character %q", got, got[j])
			}
		}
	}
}

func TestEncodeRandomUsesEveryDraw(t *testing.T) {
	i := 0
	counter := func(min, max int) int {
		d := i % 32
		i++
		return d
	}

	got := EncodeRandom(counter)
	if got != "0123456789ABCDEF" {
		t.Fatalf("counter encoding: got %q", got)
	}
	if i != RandLen {
		t.Fatalf("expected %d draws, got %d", RandLen, i)
	}
}

func TestIncrement(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0000000000000000", "0000000000000001"},
		{"0000000000000009", "000000000000000A"},
		{"000000000000000Z", "0000000000000010"}, // carry one position left
		{"00000000000000ZZ", "0000000000000100"}, // carry two positions
		{"0", "1"},                               // any length >= 1
		{"Y", "Z"},
		{"0ZZZZZZZZZZZZZZZ", "1000000000000000"},
	}

	for _, tt := range tests {
		got, err := Increment(tt.in)
		if err != nil {
			t.Fatalf("Increment(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Increment(%q): got %q, want %q", tt.in, got, tt.want)
		}
		if !(got > tt.in) {
			t.Errorf("Increment(%q) = %q does not sort after its input", tt.in, got)
		}
	}
}

func TestIncrementRejectsNonAlphabet(t *testing.T) {
	for _, in := range []string{"", "000000000000000I", "abcdefghijklmnop", "000000000000000 "} {
		if _, err := Increment(in); !errors.Is(err, ErrNotBase32) {
			t.Errorf("Increment(%q): got %v, want ErrNotBase32", in, err)
		}
	}
}

// Incrementing an all-maximum string has no same-length successor. The
// documented policy is to fail with ErrSequenceExhausted, never to wrap.
func TestIncrementExhausted(t *testing.T) {
	allMax := strings.Repeat("Z", RandLen)
	if _, err := Increment(allMax); !errors.Is(err, ErrSequenceExhausted) {
		t.Fatalf("Increment(%q): got %v, want ErrSequenceExhausted", allMax, err)
	}

	if _, err := Increment("Z"); !errors.Is(err, ErrSequenceExhausted) {
		t.Fatalf("Increment(\"Z\"): got %v, want ErrSequenceExhausted", err)
	}
}
