// Package acir models circuits the way an ACIR-style frontend hands them to
// the backend: a list of raw arithmetic gates over the BN254 scalar field,
// the witness assignment and the indices of the public inputs.
//
// Witness indices are 1-based; index 0 is reserved and always carries the
// constant one.
package acir

import (
	"encoding/json"
	"fmt"
)

// MulTerm is Coefficient * w[Multiplicand] * w[Multiplier]
type MulTerm struct {
	Coefficient  Felt   `json:"coefficient"`
	Multiplicand uint32 `json:"multiplicand"`
	Multiplier   uint32 `json:"multiplier"`
}

// AddTerm is Coefficient * w[Sum]
type AddTerm struct {
	Coefficient Felt   `json:"coefficient"`
	Sum         uint32 `json:"sum"`
}

// RawGate asserts Σ MulTerms + Σ AddTerms + ConstantTerm == 0
type RawGate struct {
	MulTerms     []MulTerm `json:"mul_terms"`
	AddTerms     []AddTerm `json:"add_terms"`
	ConstantTerm Felt      `json:"constant_term"`
}

// RawR1CS is a full circuit as serialized by the frontend.
//
// Values assigns witness indices 1..NumVariables-1 in order; it may be empty
// when the circuit is only preprocessed. NumConstraints is the frontend's
// gate-count hint; the backend computes the exact constraint count itself.
type RawR1CS struct {
	Gates          []RawGate  `json:"gates"`
	PublicInputs   []uint32   `json:"public_inputs"`
	Values         FeltVector `json:"values"`
	NumVariables   uint64     `json:"num_variables"`
	NumConstraints uint64     `json:"num_constraints"`
}

// Parse decodes a JSON-serialized circuit and validates it.
func Parse(data []byte) (*RawR1CS, error) {
	var raw RawR1CS
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("when parsing raw circuit: %w", err)
	}
	if err := raw.Validate(); err != nil {
		return nil, err
	}
	return &raw, nil
}

// Validate checks the internal consistency of the circuit: witness indices
// in range, public inputs distinct, values matching the declared variable
// count.
func (raw *RawR1CS) Validate() error {
	if raw.NumVariables < 1 {
		return fmt.Errorf("invalid number of variables %d", raw.NumVariables)
	}

	checkIndex := func(idx uint32) error {
		if idx == 0 {
			return fmt.Errorf("witness index 0 is reserved")
		}
		if uint64(idx) >= raw.NumVariables {
			return fmt.Errorf("witness index %d out of range (%d variables)", idx, raw.NumVariables)
		}
		return nil
	}

	seen := make(map[uint32]struct{}, len(raw.PublicInputs))
	for _, pi := range raw.PublicInputs {
		if err := checkIndex(pi); err != nil {
			return fmt.Errorf("invalid public input: %w", err)
		}
		if _, ok := seen[pi]; ok {
			return fmt.Errorf("duplicate public input %d", pi)
		}
		seen[pi] = struct{}{}
	}

	for i, gate := range raw.Gates {
		for _, mt := range gate.MulTerms {
			if err := checkIndex(mt.Multiplicand); err != nil {
				return fmt.Errorf("gate %d: %w", i, err)
			}
			if err := checkIndex(mt.Multiplier); err != nil {
				return fmt.Errorf("gate %d: %w", i, err)
			}
		}
		for _, at := range gate.AddTerms {
			if err := checkIndex(at.Sum); err != nil {
				return fmt.Errorf("gate %d: %w", i, err)
			}
		}
	}

	if len(raw.Values) != 0 && uint64(len(raw.Values))+1 != raw.NumVariables {
		return fmt.Errorf("got %d values for %d variables", len(raw.Values), raw.NumVariables)
	}

	return nil
}
