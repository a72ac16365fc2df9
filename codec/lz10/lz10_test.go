package lz10

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
	roundtrip(t, []byte("the quick brown fox"))
}

func TestRoundtripRepeats(t *testing.T) {
	data := bytes.Repeat([]byte("abcabcabcabc"), 50)
	roundtrip(t, data)
}

func TestRoundtripSelfOverlap(t *testing.T) {
	data := append([]byte("xy"), bytes.Repeat([]byte("z"), 40)...)
	roundtrip(t, data)
}

func TestAlternatingPatternParsesAsOneTrailingMatch(t *testing.T) {
	data := []byte("ABABABABAB")
	roundtrip(t, data)

	tokens := retrolz.Parse(data, limitations, options, price)
	want := []retrolz.Token{
		{IsMatch: false, Position: 0, Length: 1},
		{IsMatch: false, Position: 1, Length: 1},
		{IsMatch: true, Position: 2, Length: 8, Displacement: 2},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %+v, want %+v", len(tokens), tokens, want)
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Fatalf("token %d: got %+v, want %+v", i, tok, want[i])
		}
	}
}

func TestIdentify(t *testing.T) {
	f := New()
	if !f.Identify([]byte{0x10, 0, 0, 0}) {
		t.Fatal("expected tag 0x10 to be identified")
	}
	if f.Identify([]byte{0x11, 0, 0, 0}) {
		t.Fatal("did not expect tag 0x11 to be identified")
	}
}
