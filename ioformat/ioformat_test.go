package ioformat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/revaldinho/argus400/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHexTwelveWordsPerLine(t *testing.T) {
	image := make([]uint32, 13)
	for i := range image {
		image[i] = uint32(i)
	}
	var buf bytes.Buffer
	require.NoError(t, WriteHex(&buf, image))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Count(lines[0], " "), WordsPerHexLine)
	assert.Equal(t, "000000 ", lines[0][:7])
}

func TestWriteBinLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBin(&buf, []uint32{0x123456}))
	assert.Equal(t, []byte{0x56, 0x34, 0x12}, buf.Bytes())
}

func TestLoadHexRoundTrip(t *testing.T) {
	image := []uint32{0x001484, 0x000380}
	text := RenderHex(image)

	loaded, err := LoadHex(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x001484), loaded[0])
	assert.Equal(t, uint32(0x000380), loaded[1])
	assert.Equal(t, uint32(0), loaded[2])
}

func TestLoadHexShorterInputIsZeroPadded(t *testing.T) {
	loaded, err := LoadHex(strings.NewReader("1 2 3"))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), loaded[0])
	assert.Equal(t, uint32(0), loaded[word.MemSize-1])
}

func TestLoadHexMalformedTokenIsFatal(t *testing.T) {
	_, err := LoadHex(strings.NewReader("1 zzz 3"))
	require.Error(t, err)
}

func TestLoadBinRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBin(&buf, []uint32{0x123456, 0xABCDEF}))

	loaded, err := LoadBin(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x123456), loaded[0])
	assert.Equal(t, uint32(0xABCDEF), loaded[1])
}

func TestLoadBinRejectsPartialWord(t *testing.T) {
	_, err := LoadBin(bytes.NewReader([]byte{1, 2}))
	require.Error(t, err)
}

func TestFormatListingRow(t *testing.T) {
	row := ListingRow{Addr: 0x1020, Word: 0x001484, Label: "start", Source: "ldc r1,#0x5"}
	got := FormatListingRow(row)
	assert.Equal(t, "1020 : 001484 : start       : ldc r1,#0x5", got)
}
