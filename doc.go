// Package noirbackend implements a Groth16 zkSNARK proving backend over the
// BN254 curve for circuits expressed as raw arithmetic gates.
//
// The input format is the one emitted by an ACIR-style circuit frontend: a
// list of gates made of multiplicative and additive terms over the scalar
// field, together with the witness assignment and the indices of the public
// inputs. The backend lowers the gates to a rank-1 constraint system, runs
// the circuit-specific setup and produces (or checks) succinct proofs.
//
// The exported operations live in the backend package; the proving and
// verification algorithms in backend/groth16.
package noirbackend

import (
	"github.com/blang/semver/v4"
)

// Version is encoded in serialized constraint systems and checked on load.
var Version = semver.MustParse("0.2.0")
