package acir

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hexZero     = "0000000000000000000000000000000000000000000000000000000000000000"
	hexOne      = "0000000000000000000000000000000000000000000000000000000000000001"
	hexMinusOne = "30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000000"
)

// hexFelt returns the 32-byte big-endian hex encoding of v
func hexFelt(v uint64) string {
	var e fr.Element
	e.SetUint64(v)
	b := e.Bytes()
	return hex.EncodeToString(b[:])
}

// mulCircuitJSON asserts x*y == z with z public;
// witness indices 1=x, 2=y, 3=z
func mulCircuitJSON(t *testing.T) []byte {
	t.Helper()
	return []byte(`{
		"gates": [
			{
				"mul_terms": [
					{"coefficient": "` + hexOne + `", "multiplicand": 1, "multiplier": 2}
				],
				"add_terms": [
					{"coefficient": "` + hexMinusOne + `", "sum": 3}
				],
				"constant_term": "` + hexZero + `"
			}
		],
		"public_inputs": [3],
		"values": "00000003` + hexFelt(3) + hexFelt(5) + hexFelt(15) + `",
		"num_variables": 4,
		"num_constraints": 1
	}`)
}

func TestParse(t *testing.T) {
	raw, err := Parse(mulCircuitJSON(t))
	require.NoError(t, err)

	require.Len(t, raw.Gates, 1)
	gate := raw.Gates[0]
	require.Len(t, gate.MulTerms, 1)
	assert.True(t, gate.MulTerms[0].Coefficient.IsOne())
	assert.Equal(t, uint32(1), gate.MulTerms[0].Multiplicand)
	assert.Equal(t, uint32(2), gate.MulTerms[0].Multiplier)

	require.Len(t, gate.AddTerms, 1)
	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)
	assert.True(t, gate.AddTerms[0].Coefficient.Equal(&minusOne))
	assert.True(t, gate.ConstantTerm.IsZero())

	assert.Equal(t, []uint32{3}, raw.PublicInputs)
	assert.Equal(t, uint64(4), raw.NumVariables)

	require.Len(t, raw.Values, 3)
	var expected fr.Element
	expected.SetUint64(15)
	assert.True(t, raw.Values[2].Equal(&expected))
}

func TestParseInvalid(t *testing.T) {
	for name, mutate := range map[string]func(*RawR1CS){
		"zero index":          func(r *RawR1CS) { r.Gates[0].MulTerms[0].Multiplicand = 0 },
		"index out of range":  func(r *RawR1CS) { r.Gates[0].AddTerms[0].Sum = 4 },
		"zero public input":   func(r *RawR1CS) { r.PublicInputs[0] = 0 },
		"duplicate public":    func(r *RawR1CS) { r.PublicInputs = []uint32{3, 3} },
		"values count":        func(r *RawR1CS) { r.Values = r.Values[:2] },
		"no variables at all": func(r *RawR1CS) { r.NumVariables = 0; r.Values = nil },
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := Parse(mulCircuitJSON(t))
			require.NoError(t, err)
			mutate(raw)
			assert.Error(t, raw.Validate())
		})
	}

	_, err := Parse([]byte(`{"gates": [`))
	assert.Error(t, err)
}

func TestFeltJSON(t *testing.T) {
	var f Felt
	f.SetUint64(42)

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `"`+hexFelt(42)+`"`, string(data))

	var back Felt
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, f.Equal(&back.Element))

	// wrong length
	assert.Error(t, json.Unmarshal([]byte(`"2a"`), &back))
	// non canonical residue (the modulus itself)
	assert.Error(t, json.Unmarshal([]byte(`"30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001"`), &back))
	// not hex
	assert.Error(t, json.Unmarshal([]byte(`"zz"`), &back))
}

func TestFeltVectorJSON(t *testing.T) {
	v := FeltVector(make(fr.Vector, 2))
	v[0].SetUint64(3)
	v[1].SetUint64(5)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `"00000002`+hexFelt(3)+hexFelt(5)+`"`, string(data))

	var back FeltVector
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.True(t, v[1].Equal(&back[1]))

	// empty encodes to the empty string
	data, err = json.Marshal(FeltVector(nil))
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Nil(t, []fr.Element(back))
}

func TestParseFelts(t *testing.T) {
	encoded := []byte("00000002" + hexFelt(3) + hexFelt(5))
	v, err := ParseFelts(encoded)
	require.NoError(t, err)
	require.Len(t, v, 2)
	var expected fr.Element
	expected.SetUint64(5)
	assert.True(t, v[1].Equal(&expected))

	v, err = ParseFelts(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = ParseFelts([]byte("not hex"))
	assert.Error(t, err)
}
