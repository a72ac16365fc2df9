package bitio

import (
	"bytes"
	"testing"
)

func TestRoundtripMSBFirst(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Config{BitOrder: MSBFirst, UnitSize: Unit8})
	values := []struct{ n int; v uint32 }{
		{3, 5}, {1, 1}, {4, 9}, {8, 0xAB}, {2, 2},
	}
	for _, e := range values {
		if err := w.WriteBits(e.n, e.v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.AlignToUnit(); err != nil {
		t.Fatal(err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()), Config{BitOrder: MSBFirst, UnitSize: Unit8})
	for _, e := range values {
		got, err := r.ReadBits(e.n)
		if err != nil {
			t.Fatal(err)
		}
		if got != e.v {
			t.Fatalf("ReadBits(%d) = %d, want %d", e.n, got, e.v)
		}
	}
}

func TestRoundtripLSBFirst(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Config{BitOrder: LSBFirst, UnitSize: Unit8})
	values := []struct{ n int; v uint32 }{
		{5, 17}, {3, 6}, {8, 0xF0}, {1, 0},
	}
	for _, e := range values {
		if err := w.WriteBits(e.n, e.v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.AlignToUnit(); err != nil {
		t.Fatal(err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()), Config{BitOrder: LSBFirst, UnitSize: Unit8})
	for _, e := range values {
		got, err := r.ReadBits(e.n)
		if err != nil {
			t.Fatal(err)
		}
		if got != e.v {
			t.Fatalf("ReadBits(%d) = %d, want %d", e.n, got, e.v)
		}
	}
}

func TestRoundtripUnit16BigEndian(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Config{BitOrder: MSBFirst, ByteOrder: BigEndian, UnitSize: Unit16})
	if err := w.WriteBits(16, 0x1234); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBits(16, 0xABCD); err != nil {
		t.Fatal(err)
	}
	r := NewReader(bytes.NewReader(buf.Bytes()), Config{BitOrder: MSBFirst, ByteOrder: BigEndian, UnitSize: Unit16})
	if got, err := r.ReadBits(16); err != nil || got != 0x1234 {
		t.Fatalf("got %x, %v", got, err)
	}
	if got, err := r.ReadBits(16); err != nil || got != 0xABCD {
		t.Fatalf("got %x, %v", got, err)
	}
}

func TestByteAlignedHelpersRequireAlignment(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Config{})
	if err := w.WriteBits(3, 1); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteByte(0xFF); err == nil {
		t.Fatal("expected WriteByte to reject an unaligned writer")
	}
}
