package acir

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Felt is a BN254 scalar field element. The JSON encoding is the 32-byte
// big-endian canonical residue, hex encoded.
type Felt struct {
	fr.Element
}

func (z Felt) MarshalJSON() ([]byte, error) {
	b := z.Bytes()
	return json.Marshal(hex.EncodeToString(b[:]))
}

func (z *Felt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("when decoding field element %q: %w", s, err)
	}
	if len(b) != fr.Bytes {
		return fmt.Errorf("field element must be %d bytes, got %d", fr.Bytes, len(b))
	}
	if err := z.SetBytesCanonical(b); err != nil {
		return fmt.Errorf("field element %q is not a canonical residue: %w", s, err)
	}
	return nil
}

// FeltVector is a vector of field elements. The JSON encoding is the hex of
// the gnark-crypto binary vector encoding (big-endian uint32 length prefix
// followed by the packed elements).
type FeltVector fr.Vector

func (v FeltVector) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return json.Marshal("")
	}
	fv := fr.Vector(v)
	b, err := fv.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return json.Marshal(hex.EncodeToString(b))
}

func (v *FeltVector) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*v = nil
		return nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("when decoding values: %w", err)
	}
	var fv fr.Vector
	if err := fv.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("when unpacking values: %w", err)
	}
	*v = FeltVector(fv)
	return nil
}

// ParseFelts decodes a hex-encoded vector of field elements, as found in the
// values entry of a serialized circuit.
func ParseFelts(encoded []byte) (fr.Vector, error) {
	if len(encoded) == 0 {
		return nil, nil
	}
	b, err := hex.DecodeString(string(encoded))
	if err != nil {
		return nil, fmt.Errorf("when decoding field elements: %w", err)
	}
	var v fr.Vector
	if err := v.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return v, nil
}
