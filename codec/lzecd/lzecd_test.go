package lzecd

import (
	"bytes"
	"testing"

	"github.com/retrolz/retrolz"
)

func roundtrip(t *testing.T, data []byte) {
	f := New()
	var compressed bytes.Buffer
	if err := f.Encode(bytes.NewReader(data), &compressed); err != nil {
		t.Fatal(err)
	}
	var decompressed bytes.Buffer
	if err := f.Decode(bytes.NewReader(compressed.Bytes()), &decompressed); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed.Bytes(), data) {
		t.Fatalf("roundtrip mismatch: got %x want %x", decompressed.Bytes(), data)
	}
}

func TestRoundtripEmpty(t *testing.T) {
	roundtrip(t, nil)
}

func TestRoundtripLiteralsOnly(t *testing.T) {
	roundtrip(t, []byte("the quick brown fox jumps over the lazy dog"))
}

func TestRoundtripRepeats(t *testing.T) {
	data := bytes.Repeat([]byte("abcabcabcabc"), 50)
	roundtrip(t, data)
}

func TestRoundtripSelfOverlap(t *testing.T) {
	data := append([]byte("xy"), bytes.Repeat([]byte("z"), 40)...)
	roundtrip(t, data)
}

func TestLeadingZeroRunDecomposesAgainstPreBuffer(t *testing.T) {
	data := make([]byte, 0x500)
	roundtrip(t, data)

	tokens := retrolz.Parse(data, limitations, options, price)
	if len(tokens) == 0 {
		t.Fatal("expected at least one token")
	}
	// The pre-buffer supplies enough zero-fill context that even the very
	// first byte can be written as a match instead of a literal.
	if !tokens[0].IsMatch {
		t.Fatalf("expected the pre-buffer to make the first token a match, got %+v", tokens[0])
	}
	covered := 0
	for _, tok := range tokens {
		if tok.Position != covered {
			t.Fatalf("token %+v does not continue from %d", tok, covered)
		}
		if tok.IsMatch && tok.Length > 0x42 {
			t.Fatalf("match length %d exceeds the format's MaxLength 0x42", tok.Length)
		}
		covered += tok.Length
	}
	if covered != len(data) {
		t.Fatalf("tokens cover %d bytes, want %d", covered, len(data))
	}
}
