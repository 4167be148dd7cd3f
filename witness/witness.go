// Package witness holds the full input assignment of a constraint system.
package witness

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Witness is the assignment of the public and secret wires of an R1CS, in
// wire order. Vector[0] is the constant one wire; the public inputs follow,
// then the secret values. Internal wires are not part of a witness, the
// solver computes them.
type Witness struct {
	Vector   fr.Vector
	NbPublic int // counts the constant one wire
}

// New returns a witness for the given public and secret values.
func New(public, secret fr.Vector) *Witness {
	v := make(fr.Vector, 0, 1+len(public)+len(secret))
	var one fr.Element
	one.SetOne()
	v = append(v, one)
	v = append(v, public...)
	v = append(v, secret...)
	return &Witness{Vector: v, NbPublic: 1 + len(public)}
}

// Public returns the public inputs, without the leading constant one.
// The returned vector aliases the witness.
func (w *Witness) Public() fr.Vector {
	return w.Vector[1:w.NbPublic]
}

// WriteTo encodes the witness into provided io.Writer
func (w *Witness) WriteTo(out io.Writer) (int64, error) {
	if err := binary.Write(out, binary.BigEndian, uint32(w.NbPublic)); err != nil {
		return 0, err
	}
	n, err := w.Vector.WriteTo(out)
	return 4 + n, err
}

// ReadFrom attempts to decode a witness from io.Reader
func (w *Witness) ReadFrom(in io.Reader) (int64, error) {
	var nbPublic uint32
	if err := binary.Read(in, binary.BigEndian, &nbPublic); err != nil {
		return 0, err
	}
	n, err := w.Vector.ReadFrom(in)
	if err != nil {
		return 4 + n, err
	}
	w.NbPublic = int(nbPublic)
	if w.NbPublic < 1 || w.NbPublic > len(w.Vector) {
		return 4 + n, errors.New("invalid public input count")
	}
	if !w.Vector[0].IsOne() {
		return 4 + n, errors.New("witness does not start with the constant one")
	}
	return 4 + n, nil
}
