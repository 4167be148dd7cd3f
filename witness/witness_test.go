package witness

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vector(values ...uint64) fr.Vector {
	v := make(fr.Vector, len(values))
	for i, val := range values {
		v[i].SetUint64(val)
	}
	return v
}

func TestNew(t *testing.T) {
	w := New(vector(35), vector(3))

	require.Len(t, w.Vector, 3)
	assert.True(t, w.Vector[0].IsOne())
	assert.Equal(t, 2, w.NbPublic)

	public := w.Public()
	require.Len(t, public, 1)
	var expected fr.Element
	expected.SetUint64(35)
	assert.True(t, public[0].Equal(&expected))
}

func TestNewNoPublic(t *testing.T) {
	w := New(nil, vector(3, 5))
	assert.Equal(t, 1, w.NbPublic)
	assert.Empty(t, w.Public())
}

func TestSerialization(t *testing.T) {
	w := New(vector(35), vector(3, 7))

	var buf bytes.Buffer
	written, err := w.WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), written)

	var reconstructed Witness
	read, err := reconstructed.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, written, read)

	assert.Equal(t, w.NbPublic, reconstructed.NbPublic)
	require.Len(t, reconstructed.Vector, len(w.Vector))
	for i := range w.Vector {
		assert.True(t, w.Vector[i].Equal(&reconstructed.Vector[i]))
	}
}

func TestDeserializationInvalid(t *testing.T) {
	w := New(vector(35), vector(3))
	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)
	data := buf.Bytes()

	// public input count out of range
	corrupted := append([]byte{0, 0, 0, 42}, data[4:]...)
	var reconstructed Witness
	_, err = reconstructed.ReadFrom(bytes.NewReader(corrupted))
	assert.Error(t, err)

	// leading element is not the constant one
	w2 := &Witness{Vector: vector(2, 35, 3), NbPublic: 2}
	buf.Reset()
	_, err = w2.WriteTo(&buf)
	require.NoError(t, err)
	_, err = reconstructed.ReadFrom(&buf)
	assert.Error(t, err)
}
