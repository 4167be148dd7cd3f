package constraint

import (
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"
)

// CircuitDigest returns a field element committing to the shape of the
// constraint system: counts, constraints, product instructions and
// coefficients. Keys derived from a system embed the digest so that a
// key/circuit mismatch is caught before proving or verifying.
func (cs *R1CS) CircuitDigest() fr.Element {
	h := sha3.New256()

	var scratch [8]byte
	writeUint64 := func(v uint64) {
		binary.BigEndian.PutUint64(scratch[:], v)
		h.Write(scratch[:])
	}

	h.Write([]byte(cs.ScalarField))
	writeUint64(uint64(cs.NbPublic))
	writeUint64(uint64(cs.NbSecret))
	writeUint64(uint64(cs.NbInternal))

	for _, v := range cs.packCalldata() {
		writeUint64(uint64(v))
	}
	for i := range cs.Coefficients {
		b := cs.Coefficients[i].Bytes()
		h.Write(b[:])
	}

	var res fr.Element
	res.SetBytes(h.Sum(nil))
	return res
}
