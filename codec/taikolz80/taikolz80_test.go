package taikolz80

import (
	"bytes"
	"testing"
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

func TestRoundtripLongRun(t *testing.T) {
	data := append([]byte("xy"), bytes.Repeat([]byte("z"), 600)...)
	roundtrip(t, data)
}
