package constraint

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// R1CSSolution is the result of solving an R1CS with a full input assignment.
//
// A, B and C hold the per-constraint evaluations of L, R and O, followed by
// one entry per public wire (the value of the wire itself); the Groth16
// setup adds a matching gate per public input, so the prover needs the same
// layout.
type R1CSSolution struct {
	W       fr.Vector
	A, B, C fr.Vector
}

// UnsatisfiedConstraintError wraps the id of the first constraint the
// assignment does not satisfy.
type UnsatisfiedConstraintError struct {
	CID int
}

func (e *UnsatisfiedConstraintError) Error() string {
	return fmt.Sprintf("constraint #%d is not satisfied", e.CID)
}

// Solve completes the input assignment with the internal (product) wires,
// evaluates every constraint and errors if one is not satisfied.
//
// input must assign the public and secret wires, in wire order, starting
// with the constant one wire.
func (cs *R1CS) Solve(input fr.Vector) (*R1CSSolution, error) {
	nbInputWires := cs.NbPublic + cs.NbSecret
	nbWires := nbInputWires + cs.NbInternal

	if len(input) != nbInputWires {
		return nil, fmt.Errorf("invalid input size: got %d, expected %d", len(input), nbInputWires)
	}
	if cs.NbPublic == 0 || !input[0].IsOne() {
		return nil, errors.New("wire 0 must be assigned the constant one")
	}

	w := make(fr.Vector, nbWires)
	copy(w, input)

	solved := bitset.New(uint(nbWires))
	for i := 0; i < nbInputWires; i++ {
		solved.Set(uint(i))
	}

	for _, p := range cs.Products {
		if !solved.Test(uint(p.X)) || !solved.Test(uint(p.Y)) {
			return nil, fmt.Errorf("product wire %d depends on an unassigned wire", p.Z)
		}
		w[p.Z].Mul(&w[p.X], &w[p.Y])
		solved.Set(uint(p.Z))
	}

	nbConstraints := len(cs.Constraints)
	res := &R1CSSolution{
		W: w,
		A: make(fr.Vector, nbConstraints+cs.NbPublic),
		B: make(fr.Vector, nbConstraints+cs.NbPublic),
		C: make(fr.Vector, nbConstraints+cs.NbPublic),
	}

	var check fr.Element
	for i, c := range cs.Constraints {
		res.A[i] = cs.eval(c.L, w, solved)
		res.B[i] = cs.eval(c.R, w, solved)
		res.C[i] = cs.eval(c.O, w, solved)

		check.Mul(&res.A[i], &res.B[i])
		if !check.Equal(&res.C[i]) {
			return nil, &UnsatisfiedConstraintError{CID: i}
		}
	}

	// dummy gates binding the public wires into the QAP (see groth16.Setup)
	for i := 0; i < cs.NbPublic; i++ {
		res.A[nbConstraints+i] = w[i]
	}

	return res, nil
}

func (cs *R1CS) eval(l LinearExpression, w fr.Vector, solved *bitset.BitSet) fr.Element {
	var res, t fr.Element
	for _, term := range l {
		if !solved.Test(uint(term.VID)) {
			// cannot happen on a system built by the gate lowering
			panic(fmt.Sprintf("wire %d is not assigned", term.VID))
		}
		t.Mul(&cs.Coefficients[term.CID], &w[term.VID])
		res.Add(&res, &t)
	}
	return res
}

// IsSolved returns nil if the input assignment satisfies the constraint system
func (cs *R1CS) IsSolved(input fr.Vector) error {
	_, err := cs.Solve(input)
	return err
}
