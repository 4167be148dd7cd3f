package constraint

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ids of the coefficients with simple values in any R1CS coeff table.
const (
	CoeffIdZero = iota
	CoeffIdOne
	CoeffIdTwo
	CoeffIdMinusOne
	CoeffIdMinusTwo
)

// CoeffTable deduplicates the coefficients appearing in the constraints.
// Terms reference coefficients by their index in Coefficients.
type CoeffTable struct {
	Coefficients []fr.Element

	mCoeffs map[fr.Element]uint32 // rebuilt on deserialization
}

func newCoeffTable(capacity int) CoeffTable {
	ct := CoeffTable{
		Coefficients: make([]fr.Element, 5, 5+capacity),
		mCoeffs:      make(map[fr.Element]uint32, capacity),
	}

	// reserved ids (CoeffIdZero .. CoeffIdMinusTwo)
	var e fr.Element
	ct.Coefficients[CoeffIdOne].SetOne()
	ct.Coefficients[CoeffIdTwo].SetUint64(2)
	e.SetOne()
	ct.Coefficients[CoeffIdMinusOne].Neg(&e)
	e.SetUint64(2)
	ct.Coefficients[CoeffIdMinusTwo].Neg(&e)
	for i, c := range ct.Coefficients {
		ct.mCoeffs[c] = uint32(i)
	}

	return ct
}

// AddCoeff adds the coefficient to the table and returns its id. Duplicate
// coefficients share an id.
func (ct *CoeffTable) AddCoeff(coeff fr.Element) uint32 {
	if cID, ok := ct.mCoeffs[coeff]; ok {
		return cID
	}
	cID := uint32(len(ct.Coefficients))
	ct.Coefficients = append(ct.Coefficients, coeff)
	ct.mCoeffs[coeff] = cID
	return cID
}

// MakeTerm returns a Term for coeff * wire
func (ct *CoeffTable) MakeTerm(coeff fr.Element, wireID int) Term {
	return Term{CID: ct.AddCoeff(coeff), VID: uint32(wireID)}
}

func (ct *CoeffTable) rebuildIndex() {
	ct.mCoeffs = make(map[fr.Element]uint32, len(ct.Coefficients))
	for i, c := range ct.Coefficients {
		ct.mCoeffs[c] = uint32(i)
	}
}
