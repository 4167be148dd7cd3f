package ioutils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	for _, input := range [][]uint32{
		{},
		{0},
		{1, 2, 3, 4, 5},
		{0, 0, 0, 4294967295, 7, 7, 7},
	} {
		var buf bytes.Buffer
		_, err := CompressAndWriteUints32(&buf, input, nil)
		require.NoError(t, err)
		written := buf.Len()

		read, output, err := ReadAndDecompressUints32(&buf)
		require.NoError(t, err)
		assert.Equal(t, written, read)
		assert.Equal(t, len(input), len(output))
		for i := range input {
			assert.Equal(t, input[i], output[i])
		}
	}
}

func TestDecompressTruncated(t *testing.T) {
	var buf bytes.Buffer
	_, err := CompressAndWriteUints32(&buf, []uint32{1, 2, 3}, nil)
	require.NoError(t, err)

	data := buf.Bytes()
	_, _, err = ReadAndDecompressUints32(bytes.NewReader(data[:4]))
	assert.Error(t, err)
	_, _, err = ReadAndDecompressUints32(bytes.NewReader(data[:len(data)-2]))
	assert.Error(t, err)
}
