// Package backend exposes the operations a circuit frontend drives: circuit
// preprocessing, exact size computation, proving and verification. Circuits
// come in as the JSON raw-gate format of package acir, keys and proofs go
// out in their binary encodings.
package backend

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Cyber-Mitch/noir-backend-using-gnark/acir"
	"github.com/Cyber-Mitch/noir-backend-using-gnark/backend/groth16"
	"github.com/Cyber-Mitch/noir-backend-using-gnark/constraint"
	"github.com/Cyber-Mitch/noir-backend-using-gnark/witness"
)

// Preprocess lowers the circuit and runs the Groth16 setup, returning the
// serialized proving and verifying keys.
//
// Setup samples fresh randomness on every call: preprocessing the same
// circuit twice yields incompatible key pairs.
func Preprocess(rawR1CS []byte) (provingKey, verifyingKey []byte, err error) {
	cs, err := compile(rawR1CS)
	if err != nil {
		return nil, nil, err
	}

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, nil, fmt.Errorf("when running setup: %w", err)
	}

	var pkBuf, vkBuf bytes.Buffer
	if _, err := pk.WriteTo(&pkBuf); err != nil {
		return nil, nil, err
	}
	if _, err := vk.WriteTo(&vkBuf); err != nil {
		return nil, nil, err
	}
	return pkBuf.Bytes(), vkBuf.Bytes(), nil
}

// GetExactCircuitSize returns the number of rank-1 constraints the circuit
// lowers to. This differs from the frontend's declared constraint count:
// gates with several mul terms expand into product constraints.
func GetExactCircuitSize(rawR1CS []byte) (uint64, error) {
	cs, err := compile(rawR1CS)
	if err != nil {
		return 0, err
	}
	return uint64(cs.GetNbConstraints()), nil
}

// ProveWithPK proves the circuit's witness with a previously preprocessed
// proving key and returns the serialized proof. The key must originate from
// a Preprocess run over the same circuit.
func ProveWithPK(rawR1CS, provingKey []byte) ([]byte, error) {
	raw, err := acir.Parse(rawR1CS)
	if err != nil {
		return nil, err
	}
	cs, err := acir.Compile(raw)
	if err != nil {
		return nil, err
	}
	w, err := acir.BuildWitness(raw)
	if err != nil {
		return nil, err
	}

	pk := new(groth16.ProvingKey)
	if _, err := pk.ReadFrom(bytes.NewReader(provingKey)); err != nil {
		return nil, fmt.Errorf("when reading proving key: %w", err)
	}

	return prove(cs, pk, w)
}

// ProveWithMeta runs a fresh setup over the circuit and proves its witness
// in one shot. The verifying side must use VerifyWithMeta semantics (its own
// fresh setup) or obtain the matching key elsewhere; the proof carries no
// key material.
func ProveWithMeta(rawR1CS []byte) ([]byte, error) {
	raw, err := acir.Parse(rawR1CS)
	if err != nil {
		return nil, err
	}
	cs, err := acir.Compile(raw)
	if err != nil {
		return nil, err
	}
	w, err := acir.BuildWitness(raw)
	if err != nil {
		return nil, err
	}

	pk, _, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("when running setup: %w", err)
	}

	return prove(cs, pk, w)
}

// VerifyWithVK checks a proof against a serialized verifying key and the
// hex-encoded public inputs. A false return with a nil error means the
// inputs were well formed but the proof does not attest the statement.
func VerifyWithVK(verifyingKey, publicInputs, proof []byte) (bool, error) {
	vk := new(groth16.VerifyingKey)
	if _, err := vk.ReadFrom(bytes.NewReader(verifyingKey)); err != nil {
		return false, fmt.Errorf("when reading verifying key: %w", err)
	}

	publics, err := acir.ParseFelts(publicInputs)
	if err != nil {
		return false, err
	}

	p := new(groth16.Proof)
	if _, err := p.ReadFrom(bytes.NewReader(proof)); err != nil {
		return false, fmt.Errorf("when reading proof: %w", err)
	}

	return verify(p, vk, publics)
}

// VerifyWithMeta runs a fresh setup over the circuit and checks the proof
// against it, taking the public inputs from the circuit's values.
func VerifyWithMeta(rawR1CS, proof []byte) (bool, error) {
	raw, err := acir.Parse(rawR1CS)
	if err != nil {
		return false, err
	}
	cs, err := acir.Compile(raw)
	if err != nil {
		return false, err
	}
	w, err := acir.BuildWitness(raw)
	if err != nil {
		return false, err
	}

	_, vk, err := groth16.Setup(cs)
	if err != nil {
		return false, fmt.Errorf("when running setup: %w", err)
	}

	p := new(groth16.Proof)
	if _, err := p.ReadFrom(bytes.NewReader(proof)); err != nil {
		return false, fmt.Errorf("when reading proof: %w", err)
	}

	return verify(p, vk, w.Public())
}

func compile(rawR1CS []byte) (*constraint.R1CS, error) {
	raw, err := acir.Parse(rawR1CS)
	if err != nil {
		return nil, err
	}
	return acir.Compile(raw)
}

func prove(cs *constraint.R1CS, pk *groth16.ProvingKey, w *witness.Witness) ([]byte, error) {
	proof, err := groth16.Prove(cs, pk, w)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func verify(p *groth16.Proof, vk *groth16.VerifyingKey, publics fr.Vector) (bool, error) {
	err := groth16.Verify(p, vk, publics)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, groth16.ErrProofRejected), errors.Is(err, groth16.ErrInvalidWitness):
		return false, nil
	default:
		return false, err
	}
}
