package constraint

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialization(t *testing.T) {
	cs := cubicSystem()

	var buf bytes.Buffer
	written, err := cs.WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), written)

	var reconstructed R1CS
	read, err := reconstructed.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, written, read)

	if diff := cmp.Diff(cs, &reconstructed,
		cmpopts.IgnoreUnexported(R1CS{}, CoeffTable{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	// the decoded system must solve
	assert.NoError(t, reconstructed.IsSolved(cubicWitness(35, 3)))
}

func TestSerializationForeignField(t *testing.T) {
	cs := cubicSystem()
	cs.ScalarField = "deadbeef"

	data, err := cs.ToBytes()
	require.NoError(t, err)

	var reconstructed R1CS
	_, err = reconstructed.FromBytes(data)
	assert.Error(t, err)
}

func TestSerializationCorrupted(t *testing.T) {
	cs := cubicSystem()
	data, err := cs.ToBytes()
	require.NoError(t, err)

	var reconstructed R1CS
	_, err = reconstructed.FromBytes(data[:headerLen-1])
	assert.Error(t, err)

	_, err = reconstructed.FromBytes(data[:len(data)/2])
	assert.Error(t, err)
}

func TestCircuitDigest(t *testing.T) {
	cs := cubicSystem()
	other := cubicSystem()

	d1 := cs.CircuitDigest()
	d2 := other.CircuitDigest()
	assert.True(t, d1.Equal(&d2), "identical systems must share a digest")

	// digest survives a serialization round trip
	data, err := cs.ToBytes()
	require.NoError(t, err)
	var reconstructed R1CS
	_, err = reconstructed.FromBytes(data)
	require.NoError(t, err)
	d3 := reconstructed.CircuitDigest()
	assert.True(t, d1.Equal(&d3))

	// any shape change moves the digest
	var one fr.Element
	one.SetOne()
	other.AddConstraint(R1C{
		L: LinearExpression{other.MakeTerm(one, 0)},
		R: LinearExpression{other.MakeTerm(one, 0)},
		O: LinearExpression{other.MakeTerm(one, 0)},
	})
	d4 := other.CircuitDigest()
	assert.False(t, d1.Equal(&d4))
}
