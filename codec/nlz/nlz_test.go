package nlz

import (
	"bytes"
	"testing"

	"github.com/retrolz/retrolz"
)

func TestFlagWriterReaderRoundtrip(t *testing.T) {
	for _, msbFirst := range []bool{true, false} {
		w := NewFlagWriter(msbFirst)
		w.PutLiteral('a')
		w.PutMatch([]byte{0x12, 0x34})
		w.PutLiteral('b')
		w.PutLiteral('c')
		w.PutMatch([]byte{0x56})
		w.PutLiteral('d')
		w.PutLiteral('e')
		w.PutMatch([]byte{0x78, 0x9A}) // 8th token of the first group
		w.PutLiteral('f')              // starts a second group

		data := w.Bytes()
		r := NewFlagReader(data, msbFirst)

		expectLiteral := func(want byte) {
			isMatch, err := r.Next()
			if err != nil {
				t.Fatal(err)
			}
			if isMatch {
				t.Fatal("expected a literal token")
			}
			got, err := r.ReadByte()
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Fatalf("got literal %x, want %x", got, want)
			}
		}
		expectMatch := func(n int, want []byte) {
			isMatch, err := r.Next()
			if err != nil {
				t.Fatal(err)
			}
			if !isMatch {
				t.Fatal("expected a match token")
			}
			got, err := r.ReadBytes(n)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("got payload %x, want %x", got, want)
			}
		}

		expectLiteral('a')
		expectMatch(2, []byte{0x12, 0x34})
		expectLiteral('b')
		expectLiteral('c')
		expectMatch(1, []byte{0x56})
		expectLiteral('d')
		expectLiteral('e')
		expectMatch(2, []byte{0x78, 0x9A})
		expectLiteral('f')
	}
}

func TestFlagWriterLiteral2(t *testing.T) {
	w := NewFlagWriter(true)
	w.PutLiteral2(0x11, 0x22)
	w.PutMatch([]byte{0x33, 0x44, 0x55})
	data := w.Bytes()

	r := NewFlagReader(data, true)
	isMatch, err := r.Next()
	if err != nil || isMatch {
		t.Fatalf("expected literal, got isMatch=%v err=%v", isMatch, err)
	}
	got, err := r.ReadBytes(2)
	if err != nil || !bytes.Equal(got, []byte{0x11, 0x22}) {
		t.Fatalf("got %x, err %v", got, err)
	}
}

func TestYazMatchShortAndLongTiers(t *testing.T) {
	cases := []struct{ length, displacement int }{
		{3, 1}, {17, 5}, {18, 2}, {0x111, 0x1000}, {4, 0x500},
	}
	for _, c := range cases {
		payload := EncodeYazMatch(c.length, c.displacement)
		r := NewFlagReader(append([]byte{0x80}, payload...), true)
		isMatch, err := r.Next()
		if err != nil || !isMatch {
			t.Fatalf("expected match bit, err %v", err)
		}
		gotLen, gotDisp, err := DecodeYazMatchFlag(r)
		if err != nil {
			t.Fatal(err)
		}
		if gotLen != c.length || gotDisp != c.displacement {
			t.Fatalf("case %+v: got length=%d displacement=%d", c, gotLen, gotDisp)
		}

		br := bytes.NewReader(payload)
		gotLen, gotDisp, err = DecodeYazMatchBytes(br)
		if err != nil {
			t.Fatal(err)
		}
		if gotLen != c.length || gotDisp != c.displacement {
			t.Fatalf("case %+v (bytes reader): got length=%d displacement=%d", c, gotLen, gotDisp)
		}
	}
}

func TestWindowCopyMatchHandlesSelfOverlap(t *testing.T) {
	w := &Window{}
	w.WriteLiteral('x')
	w.WriteLiteral('y')
	if err := w.CopyMatch(2, 7); err != nil {
		t.Fatal(err)
	}
	if string(w.Data) != "xyxyxyxyx" {
		t.Fatalf("got %q", w.Data)
	}
}

func TestWindowCopyMatchRejectsOutOfRangeDisplacement(t *testing.T) {
	w := &Window{}
	w.WriteLiteral('x')
	if err := w.CopyMatch(5, 1); err == nil {
		t.Fatal("expected an out-of-range displacement to fail")
	}
}

func TestGBAHeaderRoundtrip(t *testing.T) {
	h := GBAHeader{Tag: 0x10, DecompressedSize: 12345}
	encoded := h.Encode()
	got, n, err := DecodeGBAHeader(encoded, 0x10)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || got.DecompressedSize != 12345 {
		t.Fatalf("got %+v, consumed %d bytes", got, n)
	}
}

func TestGBAHeaderExtendedSize(t *testing.T) {
	h := GBAHeader{Tag: 0x11, DecompressedSize: 1 << 24}
	encoded := h.Encode()
	if len(encoded) != 8 {
		t.Fatalf("expected an 8-byte extended header, got %d bytes", len(encoded))
	}
	got, n, err := DecodeGBAHeader(encoded, 0x11)
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 || got.DecompressedSize != 1<<24 {
		t.Fatalf("got %+v, consumed %d bytes", got, n)
	}
}

func TestGBAHeaderRejectsWrongTag(t *testing.T) {
	h := GBAHeader{Tag: 0x10, DecompressedSize: 4}
	if _, _, err := DecodeGBAHeader(h.Encode(), 0x11); err == nil {
		t.Fatal("expected a tag mismatch to be rejected")
	}
}

func TestMultiStreamRoundtrip(t *testing.T) {
	data := []byte("abcabcabcabcxyzxyzxyzxyz")
	limitations := []retrolz.FindLimitations{
		{MinLength: 3, MaxLength: 0x111, MinDisplacement: 1, MaxDisplacement: 0x1000},
	}
	options := retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}
	price := retrolz.FuncPrice{
		Literal: func(unit []byte) int { return 9 },
		Match: func(m retrolz.Match) int {
			if m.Length < 0x12 {
				return 17
			}
			return 25
		},
	}
	units := retrolz.Units{Data: data, Size: retrolz.UnitSize1}
	tokens := retrolz.Parse(data, limitations, options, price)

	flags, links, literals := EncodeMultiStream(tokens, units, true, func(m retrolz.Match) []byte {
		return EncodeYazMatch(m.Length, m.Displacement)
	})
	out, err := DecodeMultiStream(flags, links, literals, true, len(data), DecodeYazMatchBytes)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("got %q, want %q", out, data)
	}
}
