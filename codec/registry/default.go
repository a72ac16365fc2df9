package registry

import (
	"github.com/retrolz/retrolz/codec/backwardlz77"
	"github.com/retrolz/retrolz/codec/lz10"
	"github.com/retrolz/retrolz/codec/lz11"
	"github.com/retrolz/retrolz/codec/lz40"
	"github.com/retrolz/retrolz/codec/lz60"
	"github.com/retrolz/retrolz/codec/lz77"
	"github.com/retrolz/retrolz/codec/lzecd"
	"github.com/retrolz/retrolz/codec/lze"
	"github.com/retrolz/retrolz/codec/lzenc"
	"github.com/retrolz/retrolz/codec/lzss"
	"github.com/retrolz/retrolz/codec/lzssvlc"
	"github.com/retrolz/retrolz/codec/mio0"
	"github.com/retrolz/retrolz/codec/nintendohuffman"
	"github.com/retrolz/retrolz/codec/rle"
	"github.com/retrolz/retrolz/codec/taikolz80"
	"github.com/retrolz/retrolz/codec/taikolz81"
	"github.com/retrolz/retrolz/codec/talesof"
	"github.com/retrolz/retrolz/codec/wp16"
	"github.com/retrolz/retrolz/codec/yay0"
	"github.com/retrolz/retrolz/codec/yaz0"
)

// Default returns a Registry carrying every format adapter this module
// implements, in the same order spec.md §6 lists them. A caller that only
// needs a handful of formats can instead build its own Registry and
// Register just those, since every codec/<name> subpackage is independently
// importable.
func Default() *Registry {
	r := New()
	r.Register(lz10.New())
	r.Register(lz11.New())
	r.Register(lz40.New())
	r.Register(lz60.New())
	r.Register(lz77.New())
	r.Register(backwardlz77.New())
	r.Register(lzecd.New())
	r.Register(lze.New())
	r.Register(lzss.New())
	r.Register(lzssvlc.New())
	r.Register(nintendohuffman.New4LE())
	r.Register(nintendohuffman.New4BE())
	r.Register(nintendohuffman.New8LE())
	r.Register(nintendohuffman.New8BE())
	r.Register(rle.New())
	r.Register(mio0.NewBE())
	r.Register(mio0.NewLE())
	r.Register(yay0.NewBE())
	r.Register(yay0.NewLE())
	r.Register(yaz0.NewBE())
	r.Register(yaz0.NewLE())
	r.Register(taikolz80.New())
	r.Register(taikolz81.New())
	r.Register(wp16.New())
	r.Register(talesof.New01())
	r.Register(talesof.New03())
	r.Register(lzenc.New())
	return r
}
