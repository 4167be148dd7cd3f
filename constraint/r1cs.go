// Package constraint holds the rank-1 constraint system the gate lowering
// produces and the Groth16 backend consumes.
//
// Wire ids are laid out as [one, public..., secret..., internal...]; wire 0
// is the constant one. Internal wires only ever come from product
// instructions, which is what lets the solver complete a partial assignment.
package constraint

import (
	"fmt"
	"math/big"

	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	noirbackend "github.com/Cyber-Mitch/noir-backend-using-gnark"
	"github.com/Cyber-Mitch/noir-backend-using-gnark/logger"
)

// Product is a solver instruction; the wire Z is assigned X * Y.
// The matching R1C is stored alongside the other constraints.
type Product struct {
	X, Y, Z uint32
}

// R1CS describes a set of rank-1 constraints over the BN254 scalar field.
type R1CS struct {
	// serialization header
	BackendVersion string
	ScalarField    string

	CoeffTable

	Constraints []R1C     `cbor:"-"`
	Products    []Product `cbor:"-"`

	// wire counts; NbPublic includes the constant one wire
	NbPublic   int
	NbSecret   int
	NbInternal int

	q *big.Int
}

// NewR1CS returns a system with the given input wire counts; capacity is a
// hint on the number of constraints.
func NewR1CS(nbPublic, nbSecret, capacity int) *R1CS {
	return &R1CS{
		BackendVersion: noirbackend.Version.String(),
		ScalarField:    fr.Modulus().Text(16),
		CoeffTable:     newCoeffTable(capacity / 2),
		Constraints:    make([]R1C, 0, capacity),
		NbPublic:       nbPublic,
		NbSecret:       nbSecret,
		q:              fr.Modulus(),
	}
}

// AddConstraint appends the constraint and returns its id
func (cs *R1CS) AddConstraint(c R1C) int {
	cs.Constraints = append(cs.Constraints, c)
	return len(cs.Constraints) - 1
}

// AddProduct declares a new internal wire carrying x * y and returns its id.
// The caller is responsible for adding the matching R1C.
func (cs *R1CS) AddProduct(x, y uint32) uint32 {
	z := uint32(cs.NbPublic + cs.NbSecret + cs.NbInternal)
	cs.NbInternal++
	cs.Products = append(cs.Products, Product{X: x, Y: y, Z: z})
	return z
}

// GetNbConstraints returns the number of rank-1 constraints in the system
func (cs *R1CS) GetNbConstraints() int {
	return len(cs.Constraints)
}

// GetNbVariables return number of public, secret and internal wires
func (cs *R1CS) GetNbVariables() (public, secret, internal int) {
	return cs.NbPublic, cs.NbSecret, cs.NbInternal
}

func (cs *R1CS) GetNbWires() int {
	return cs.NbPublic + cs.NbSecret + cs.NbInternal
}

func (cs *R1CS) GetNbPublicVariables() int {
	return cs.NbPublic
}

func (cs *R1CS) GetNbSecretVariables() int {
	return cs.NbSecret
}

func (cs *R1CS) GetNbInternalVariables() int {
	return cs.NbInternal
}

// Field returns the scalar field the constraints are defined over
func (cs *R1CS) Field() *big.Int {
	return new(big.Int).Set(cs.q)
}

// CheckSerializationHeader parses the scalar field and version headers
//
// This is meant to be used at the deserialization step, and will error for illegal values
func (cs *R1CS) CheckSerializationHeader() error {
	binaryVersion := noirbackend.Version
	objectVersion, err := semver.Parse(cs.BackendVersion)
	if err != nil {
		return fmt.Errorf("when parsing backend version: %w", err)
	}

	if binaryVersion.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", binaryVersion.String()).Str("object", objectVersion.String()).Msg("backend version (binary) mismatch with constraint system. there are no guarantees on compatibility")
	}

	scalarField := new(big.Int)
	if _, ok := scalarField.SetString(cs.ScalarField, 16); !ok {
		return fmt.Errorf("when parsing serialized modulus: %s", cs.ScalarField)
	}
	if scalarField.Cmp(fr.Modulus()) != 0 {
		return fmt.Errorf("unsupported scalar field %s", cs.ScalarField)
	}
	cs.q = new(big.Int).Set(scalarField)
	return nil
}
