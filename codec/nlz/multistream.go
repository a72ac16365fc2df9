package nlz

import (
	"bytes"
	"io"

	"github.com/retrolz/retrolz"
)

// EncodeMultiStream lays a token stream out the way MIO0 and YAY0 do: a
// packed-bit stream recording the literal/match choice for every token
// (the same grouping FlagWriter performs for the interleaved formats, but
// here the flag bits carry no payload of their own), a stream of match
// payloads, and a stream of literal bytes — three independently addressed
// chunks a format's header then locates by offset, rather than one
// interleaved stream.
func EncodeMultiStream(tokens []retrolz.Token, units retrolz.Units, msbFirst bool, encodeMatch func(retrolz.Match) []byte) (flags, links, literals []byte) {
	var flagByte byte
	bit := 0
	pushBit := func(isMatch bool) {
		if isMatch {
			if msbFirst {
				flagByte |= 1 << uint(7-bit)
			} else {
				flagByte |= 1 << uint(bit)
			}
		}
		bit++
		if bit == 8 {
			flags = append(flags, flagByte)
			flagByte = 0
			bit = 0
		}
	}
	for _, t := range tokens {
		if t.IsMatch {
			m := retrolz.Match{Position: t.Position, Length: t.Length, Displacement: t.Displacement}
			links = append(links, encodeMatch(m)...)
			pushBit(true)
			continue
		}
		literals = append(literals, t.Literal(units)[0])
		pushBit(false)
	}
	if bit != 0 {
		flags = append(flags, flagByte)
	}
	return flags, links, literals
}

// DecodeMultiStream is EncodeMultiStream's inverse. decodeMatch reads one
// match's payload from the link stream's cursor and returns its length and
// displacement.
func DecodeMultiStream(flags, links, literals []byte, msbFirst bool, outSize int, decodeMatch func(r *bytes.Reader) (length, displacement int, err error)) ([]byte, error) {
	win := &Window{}
	linkR := bytes.NewReader(links)
	litPos := 0
	flagPos, bit := 0, 8
	var flagByte byte
	for win.Len() < outSize {
		if bit == 8 {
			if flagPos >= len(flags) {
				return nil, retrolz.Wrap(retrolz.TruncatedInput, flagPos, io.ErrUnexpectedEOF, "nlz: flag stream truncated")
			}
			flagByte = flags[flagPos]
			flagPos++
			bit = 0
		}
		var isMatch bool
		if msbFirst {
			isMatch = (flagByte>>uint(7-bit))&1 != 0
		} else {
			isMatch = (flagByte>>uint(bit))&1 != 0
		}
		bit++
		if !isMatch {
			if litPos >= len(literals) {
				return nil, retrolz.Wrap(retrolz.TruncatedInput, litPos, io.ErrUnexpectedEOF, "nlz: literal stream truncated")
			}
			win.WriteLiteral(literals[litPos])
			litPos++
			continue
		}
		length, displacement, err := decodeMatch(linkR)
		if err != nil {
			return nil, err
		}
		if win.Len()+length > outSize {
			length = outSize - win.Len()
		}
		if err := win.CopyMatch(displacement, length); err != nil {
			return nil, err
		}
	}
	return win.Data, nil
}
