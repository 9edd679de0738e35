// Package ioformat implements the boundary-layer file formats (C5):
// hex/binary image writers, the hex and binary image loaders, and the
// listing formatter the assembler CLI prints (spec §6).
package ioformat

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/revaldinho/argus400/word"
)

// WordsPerHexLine is the fixed line width of the hex output format.
const WordsPerHexLine = 12

// WriteHex writes image as ASCII hex text: WordsPerHexLine words per
// line, each formatted `%06x ` (lowercase, zero-padded, trailing
// space), lines separated by a newline.
func WriteHex(w io.Writer, image []uint32) error {
	bw := bufio.NewWriter(w)
	for i, v := range image {
		if _, err := fmt.Fprintf(bw, "%06x ", v&word.Mask24); err != nil {
			return err
		}
		if (i+1)%WordsPerHexLine == 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
	}
	if len(image)%WordsPerHexLine != 0 {
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteBin writes image as little-endian 3-byte words, no header, no
// padding, in address order.
func WriteBin(w io.Writer, image []uint32) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 3)
	for _, v := range image {
		v &= word.Mask24
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadHex parses whitespace-separated hexadecimal tokens, each masked
// to 24 bits, zero-padding short input up to word.MemSize words. A
// malformed token is a fatal load error.
func LoadHex(r io.Reader) ([word.MemSize]uint32, error) {
	var image [word.MemSize]uint32

	data, err := io.ReadAll(r)
	if err != nil {
		return image, fmt.Errorf("reading hex image: %w", err)
	}

	tokens := strings.Fields(string(data))
	if len(tokens) > word.MemSize {
		return image, fmt.Errorf("hex image has %d words, exceeds memory size %d", len(tokens), word.MemSize)
	}

	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 16, 64)
		if err != nil {
			return image, fmt.Errorf("malformed hex token %q at word %d: %w", tok, i, err)
		}
		image[i] = uint32(v) & word.Mask24
	}
	return image, nil
}

// LoadBin parses a little-endian 3-byte-word image, zero-padding short
// input up to word.MemSize words.
func LoadBin(r io.Reader) ([word.MemSize]uint32, error) {
	var image [word.MemSize]uint32

	data, err := io.ReadAll(r)
	if err != nil {
		return image, fmt.Errorf("reading binary image: %w", err)
	}
	if len(data)%3 != 0 {
		return image, fmt.Errorf("binary image length %d is not a multiple of 3", len(data))
	}
	n := len(data) / 3
	if n > word.MemSize {
		return image, fmt.Errorf("binary image has %d words, exceeds memory size %d", n, word.MemSize)
	}
	for i := 0; i < n; i++ {
		b := data[i*3 : i*3+3]
		image[i] = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	}
	return image, nil
}

func snapshotToSlice(snap [word.MemSize]word.Word) []uint32 {
	out := make([]uint32, word.MemSize)
	for i, w := range snap {
		out[i] = uint32(w)
	}
	return out
}

// WriteHexSnapshot writes a word.Memory snapshot via WriteHex.
func WriteHexSnapshot(w io.Writer, snap [word.MemSize]word.Word) error {
	return WriteHex(w, snapshotToSlice(snap))
}

// WriteBinSnapshot writes a word.Memory snapshot via WriteBin.
func WriteBinSnapshot(w io.Writer, snap [word.MemSize]word.Word) error {
	return WriteBin(w, snapshotToSlice(snap))
}

// RenderHex renders image to a string via WriteHex, for callers (such as
// tests) that want the text in memory rather than streamed.
func RenderHex(image []uint32) string {
	var buf bytes.Buffer
	_ = WriteHex(&buf, image)
	return buf.String()
}

// ListingHeader is the column header of the assembler's post-pass2
// listing. (The emulator's trace header is emu.Header.)
const ListingHeader = "Addr :  Word  : Label       : Source"

// ListingRow is one line of the assembler listing: the address and
// emitted word(s) of a source line, alongside its label and original
// text (spec §6, extending the hex/bin external interfaces with a
// human-readable companion the way the historical tool always printed
// one next to the raw image).
type ListingRow struct {
	Addr   uint32
	Word   uint32
	Label  string
	Source string
}

// FormatListingHeader returns ListingHeader unchanged; it exists so
// callers never hardcode the literal string.
func FormatListingHeader() string {
	return ListingHeader
}

// FormatListingRow renders one assembler listing row in the fixed
// column layout: `%04x : %06x : %-11s : %s`.
func FormatListingRow(r ListingRow) string {
	return fmt.Sprintf("%04x : %06x : %-11s : %s", r.Addr&0x3FFF, r.Word&word.Mask24, r.Label, r.Source)
}
