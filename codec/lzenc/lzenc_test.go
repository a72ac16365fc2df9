package lzenc

import (
	"bytes"
	"testing"

	"github.com/retrolz/retrolz"
)

func goldenLiteralBlob(data []byte) []byte {
	blob := []byte{tag, byte(len(data)), byte(len(data) >> 8), byte(len(data) >> 16)}
	// One all-literal flag byte ahead of every group of up to 8 literals.
	for i := 0; i < len(data); i += 8 {
		end := i + 8
		if end > len(data) {
			end = len(data)
		}
		blob = append(blob, 0x00)
		blob = append(blob, data[i:end]...)
	}
	return blob
}

func TestDecodeLiteralRun(t *testing.T) {
	f := New()
	data := []byte("retro console data")
	var out bytes.Buffer
	if err := f.Decode(bytes.NewReader(goldenLiteralBlob(data)), &out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("got %q want %q", out.Bytes(), data)
	}
}

func TestDecodeMatch(t *testing.T) {
	// "aaaa" encoded as one literal 'a' followed by a match of length 3,
	// displacement 1 copying that same 'a' three more times.
	blob := []byte{tag, 4, 0, 0, 0x40, 'a', 0x00, 0x00}
	f := New()
	var out bytes.Buffer
	if err := f.Decode(bytes.NewReader(blob), &out); err != nil {
		t.Fatal(err)
	}
	want := []byte("aaaa")
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("got %q want %q", out.Bytes(), want)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	f := New()
	var out bytes.Buffer
	err := f.Encode(bytes.NewReader([]byte("anything")), &out)
	ce, ok := err.(*retrolz.CodecError)
	if !ok || ce.Kind != retrolz.UnsupportedOperation {
		t.Fatalf("expected UnsupportedOperation, got %v", err)
	}
}
