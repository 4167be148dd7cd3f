package acir

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Cyber-Mitch/noir-backend-using-gnark/constraint"
	"github.com/Cyber-Mitch/noir-backend-using-gnark/witness"
)

// Compile lowers the raw gates to a rank-1 constraint system.
//
// A gate Σ c·w_i·w_j + Σ c·w_k + c0 == 0 becomes
//   - a single linear constraint when it has no mul term,
//   - one rank-1 constraint (c·w_i) × w_j = -(Σ add + c0) when it has
//     exactly one,
//   - otherwise one product constraint per mul term, feeding an internal
//     wire each, plus the linear constraint over the products.
func Compile(raw *RawR1CS) (*constraint.R1CS, error) {
	if err := raw.Validate(); err != nil {
		return nil, err
	}

	wireOf, nbPublic, nbSecret := raw.wireMap()
	cs := constraint.NewR1CS(nbPublic, nbSecret, len(raw.Gates))

	one := cs.Coefficients[constraint.CoeffIdOne]

	for _, gate := range raw.Gates {
		// the linear part of the gate, negated, is the O side of the
		// rank-1 form
		negLinear := func() constraint.LinearExpression {
			var l constraint.LinearExpression
			var c fr.Element
			for _, at := range gate.AddTerms {
				c.Neg(&at.Coefficient.Element)
				l = append(l, cs.MakeTerm(c, int(wireOf[at.Sum])))
			}
			if !gate.ConstantTerm.IsZero() {
				c.Neg(&gate.ConstantTerm.Element)
				l = append(l, cs.MakeTerm(c, 0))
			}
			return l
		}

		switch len(gate.MulTerms) {
		case 0:
			// (Σ add + c0) × 1 = 0
			var l constraint.LinearExpression
			for _, at := range gate.AddTerms {
				l = append(l, cs.MakeTerm(at.Coefficient.Element, int(wireOf[at.Sum])))
			}
			if !gate.ConstantTerm.IsZero() {
				l = append(l, cs.MakeTerm(gate.ConstantTerm.Element, 0))
			}
			cs.AddConstraint(constraint.R1C{
				L: l,
				R: constraint.LinearExpression{cs.MakeTerm(one, 0)},
			})
		case 1:
			mt := gate.MulTerms[0]
			cs.AddConstraint(constraint.R1C{
				L: constraint.LinearExpression{cs.MakeTerm(mt.Coefficient.Element, int(wireOf[mt.Multiplicand]))},
				R: constraint.LinearExpression{cs.MakeTerm(one, int(wireOf[mt.Multiplier]))},
				O: negLinear(),
			})
		default:
			// one internal product wire per mul term
			l := make(constraint.LinearExpression, 0, len(gate.MulTerms)+len(gate.AddTerms)+1)
			for _, mt := range gate.MulTerms {
				z := cs.AddProduct(wireOf[mt.Multiplicand], wireOf[mt.Multiplier])
				cs.AddConstraint(constraint.R1C{
					L: constraint.LinearExpression{cs.MakeTerm(one, int(wireOf[mt.Multiplicand]))},
					R: constraint.LinearExpression{cs.MakeTerm(one, int(wireOf[mt.Multiplier]))},
					O: constraint.LinearExpression{cs.MakeTerm(one, int(z))},
				})
				l = append(l, cs.MakeTerm(mt.Coefficient.Element, int(z)))
			}
			for _, at := range gate.AddTerms {
				l = append(l, cs.MakeTerm(at.Coefficient.Element, int(wireOf[at.Sum])))
			}
			if !gate.ConstantTerm.IsZero() {
				l = append(l, cs.MakeTerm(gate.ConstantTerm.Element, 0))
			}
			cs.AddConstraint(constraint.R1C{
				L: l,
				R: constraint.LinearExpression{cs.MakeTerm(one, 0)},
			})
		}
	}

	return cs, nil
}

// BuildWitness orders the circuit values into a wire-ordered witness.
func BuildWitness(raw *RawR1CS) (*witness.Witness, error) {
	if err := raw.Validate(); err != nil {
		return nil, err
	}
	if len(raw.Values) == 0 {
		return nil, errors.New("circuit carries no witness values")
	}
	if uint64(len(raw.Values))+1 != raw.NumVariables {
		return nil, fmt.Errorf("got %d values for %d variables", len(raw.Values), raw.NumVariables)
	}

	public := make(fr.Vector, 0, len(raw.PublicInputs))
	isPublic := make(map[uint32]struct{}, len(raw.PublicInputs))
	for _, pi := range raw.PublicInputs {
		public = append(public, raw.Values[pi-1])
		isPublic[pi] = struct{}{}
	}

	secret := make(fr.Vector, 0, len(raw.Values)-len(public))
	for i := uint32(1); uint64(i) < raw.NumVariables; i++ {
		if _, ok := isPublic[i]; ok {
			continue
		}
		secret = append(secret, raw.Values[i-1])
	}

	return witness.New(public, secret), nil
}

// wireMap assigns a wire id to every witness index: the constant one wire
// first, then the public inputs in declaration order, then the rest.
func (raw *RawR1CS) wireMap() (wireOf []uint32, nbPublic, nbSecret int) {
	nbPublic = 1 + len(raw.PublicInputs)
	nbSecret = int(raw.NumVariables) - nbPublic

	wireOf = make([]uint32, raw.NumVariables)
	for k, pi := range raw.PublicInputs {
		wireOf[pi] = uint32(1 + k)
	}
	next := uint32(nbPublic)
	for i := uint32(1); uint64(i) < raw.NumVariables; i++ {
		if wireOf[i] == 0 {
			wireOf[i] = next
			next++
		}
	}
	return wireOf, nbPublic, nbSecret
}
