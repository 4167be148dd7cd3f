package groth16

import (
	"io"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
)

// WriteTo writes binary encoding of the Proof elements to writer
// points are stored in compressed form
func (proof *Proof) WriteTo(w io.Writer) (int64, error) {
	return proof.writeTo(w, false)
}

// WriteRawTo writes binary encoding of the Proof elements to writer
// points are stored in uncompressed form
func (proof *Proof) WriteRawTo(w io.Writer) (int64, error) {
	return proof.writeTo(w, true)
}

func (proof *Proof) writeTo(w io.Writer, raw bool) (int64, error) {
	var enc *curve.Encoder
	if raw {
		enc = curve.NewEncoder(w, curve.RawEncoding())
	} else {
		enc = curve.NewEncoder(w)
	}

	toEncode := []interface{}{
		&proof.Ar,
		&proof.Bs,
		&proof.Krs,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

// ReadFrom attempts to decode a Proof from reader; the points are checked
// for subgroup membership.
func (proof *Proof) ReadFrom(r io.Reader) (int64, error) {
	dec := curve.NewDecoder(r)

	toDecode := []interface{}{
		&proof.Ar,
		&proof.Bs,
		&proof.Krs,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}
	return dec.BytesRead(), nil
}

// WriteTo writes binary encoding of the ProvingKey to writer
func (pk *ProvingKey) WriteTo(w io.Writer) (int64, error) {
	return pk.writeTo(w, false)
}

// WriteRawTo writes binary encoding of the ProvingKey to writer
// points are stored in uncompressed form
func (pk *ProvingKey) WriteRawTo(w io.Writer) (int64, error) {
	return pk.writeTo(w, true)
}

func (pk *ProvingKey) writeTo(w io.Writer, raw bool) (int64, error) {
	n, err := pk.Domain.WriteTo(w)
	if err != nil {
		return n, err
	}

	var enc *curve.Encoder
	if raw {
		enc = curve.NewEncoder(w, curve.RawEncoding())
	} else {
		enc = curve.NewEncoder(w)
	}

	toEncode := []interface{}{
		&pk.G1.Alpha,
		&pk.G1.Beta,
		&pk.G1.Delta,
		pk.G1.A,
		pk.G1.B,
		pk.G1.Z,
		pk.G1.K,
		&pk.G2.Beta,
		&pk.G2.Delta,
		pk.G2.B,
		&pk.CircuitDigest,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return n + enc.BytesWritten(), err
		}
	}
	return n + enc.BytesWritten(), nil
}

// ReadFrom attempts to decode a ProvingKey from reader
func (pk *ProvingKey) ReadFrom(r io.Reader) (int64, error) {
	n, err := pk.Domain.ReadFrom(r)
	if err != nil {
		return n, err
	}

	dec := curve.NewDecoder(r)
	toDecode := []interface{}{
		&pk.G1.Alpha,
		&pk.G1.Beta,
		&pk.G1.Delta,
		&pk.G1.A,
		&pk.G1.B,
		&pk.G1.Z,
		&pk.G1.K,
		&pk.G2.Beta,
		&pk.G2.Delta,
		&pk.G2.B,
		&pk.CircuitDigest,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return n + dec.BytesRead(), err
		}
	}
	return n + dec.BytesRead(), nil
}

// WriteTo writes binary encoding of the VerifyingKey to writer
func (vk *VerifyingKey) WriteTo(w io.Writer) (int64, error) {
	enc := curve.NewEncoder(w)

	toEncode := []interface{}{
		&vk.G1.Alpha,
		&vk.G2.Beta,
		&vk.G2.Gamma,
		&vk.G2.Delta,
		vk.G1.K,
		&vk.CircuitDigest,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

// ReadFrom attempts to decode a VerifyingKey from reader and recomputes the
// precomputed pairing material.
func (vk *VerifyingKey) ReadFrom(r io.Reader) (int64, error) {
	dec := curve.NewDecoder(r)

	toDecode := []interface{}{
		&vk.G1.Alpha,
		&vk.G2.Beta,
		&vk.G2.Gamma,
		&vk.G2.Delta,
		&vk.G1.K,
		&vk.CircuitDigest,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}

	return dec.BytesRead(), vk.Precompute()
}
