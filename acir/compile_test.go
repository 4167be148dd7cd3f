package acir

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyber-Mitch/noir-backend-using-gnark/constraint"
)

func felt(v uint64) Felt {
	var f Felt
	f.SetUint64(v)
	return f
}

func negFelt(v uint64) Felt {
	var f Felt
	f.SetUint64(v)
	f.Neg(&f.Element)
	return f
}

func feltValues(values ...uint64) FeltVector {
	v := make(fr.Vector, len(values))
	for i, val := range values {
		v[i].SetUint64(val)
	}
	return FeltVector(v)
}

func TestCompileLinearGate(t *testing.T) {
	// x + y - 8 == 0
	raw := &RawR1CS{
		Gates: []RawGate{{
			AddTerms: []AddTerm{
				{Coefficient: felt(1), Sum: 1},
				{Coefficient: felt(1), Sum: 2},
			},
			ConstantTerm: negFelt(8),
		}},
		Values:       feltValues(3, 5),
		NumVariables: 3,
	}

	cs, err := Compile(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.GetNbConstraints())
	assert.Equal(t, 0, cs.GetNbInternalVariables())

	w, err := BuildWitness(raw)
	require.NoError(t, err)
	assert.NoError(t, cs.IsSolved(w.Vector))
}

func TestCompileSingleMulGate(t *testing.T) {
	// x*y - z == 0, z public
	raw := &RawR1CS{
		Gates: []RawGate{{
			MulTerms:     []MulTerm{{Coefficient: felt(1), Multiplicand: 1, Multiplier: 2}},
			AddTerms:     []AddTerm{{Coefficient: negFelt(1), Sum: 3}},
			ConstantTerm: felt(0),
		}},
		PublicInputs: []uint32{3},
		Values:       feltValues(3, 5, 15),
		NumVariables: 4,
	}

	cs, err := Compile(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.GetNbConstraints())
	assert.Equal(t, 0, cs.GetNbInternalVariables())
	assert.Equal(t, 2, cs.GetNbPublicVariables())

	w, err := BuildWitness(raw)
	require.NoError(t, err)
	assert.NoError(t, cs.IsSolved(w.Vector))
}

func TestCompileMultiMulGate(t *testing.T) {
	// x*y + x*x - z == 0, z public; each mul term becomes a product wire
	raw := &RawR1CS{
		Gates: []RawGate{{
			MulTerms: []MulTerm{
				{Coefficient: felt(1), Multiplicand: 1, Multiplier: 2},
				{Coefficient: felt(1), Multiplicand: 1, Multiplier: 1},
			},
			AddTerms:     []AddTerm{{Coefficient: negFelt(1), Sum: 3}},
			ConstantTerm: felt(0),
		}},
		PublicInputs: []uint32{3},
		Values:       feltValues(3, 5, 24),
		NumVariables: 4,
	}

	cs, err := Compile(raw)
	require.NoError(t, err)
	assert.Equal(t, 3, cs.GetNbConstraints())
	assert.Equal(t, 2, cs.GetNbInternalVariables())

	w, err := BuildWitness(raw)
	require.NoError(t, err)
	assert.NoError(t, cs.IsSolved(w.Vector))
}

func TestCompileUnsatisfied(t *testing.T) {
	raw, err := Parse(mulCircuitJSON(t))
	require.NoError(t, err)
	raw.Values[2] = felt(16).Element // x*y != 16

	cs, err := Compile(raw)
	require.NoError(t, err)
	w, err := BuildWitness(raw)
	require.NoError(t, err)

	err = cs.IsSolved(w.Vector)
	require.Error(t, err)
	var uerr *constraint.UnsatisfiedConstraintError
	assert.ErrorAs(t, err, &uerr)
}

func TestWireOrdering(t *testing.T) {
	// x + y - z == 0 with y public; public wires come right after the
	// constant one, whatever their witness index
	raw := &RawR1CS{
		Gates: []RawGate{{
			AddTerms: []AddTerm{
				{Coefficient: felt(1), Sum: 1},
				{Coefficient: felt(1), Sum: 2},
				{Coefficient: negFelt(1), Sum: 3},
			},
		}},
		PublicInputs: []uint32{2},
		Values:       feltValues(11, 5, 16),
		NumVariables: 4,
	}

	cs, err := Compile(raw)
	require.NoError(t, err)
	w, err := BuildWitness(raw)
	require.NoError(t, err)

	require.Equal(t, 2, w.NbPublic)
	var expected fr.Element
	expected.SetUint64(5)
	assert.True(t, w.Vector[1].Equal(&expected), "public wire must hold the value of witness index 2")
	expected.SetUint64(11)
	assert.True(t, w.Vector[2].Equal(&expected))
	expected.SetUint64(16)
	assert.True(t, w.Vector[3].Equal(&expected))

	assert.NoError(t, cs.IsSolved(w.Vector))
}

func TestBuildWitnessNoValues(t *testing.T) {
	raw, err := Parse(mulCircuitJSON(t))
	require.NoError(t, err)
	raw.Values = nil

	_, err = BuildWitness(raw)
	assert.Error(t, err)

	// compiling without values is fine, preprocessing does it
	_, err = Compile(raw)
	assert.NoError(t, err)
}
