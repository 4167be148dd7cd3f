package constraint

// Term represents a coeff * wire in a constraint system. The coefficient is
// an index in the system's coefficient table.
type Term struct {
	CID, VID uint32
}

func (t Term) WireID() int {
	return int(t.VID)
}

func (t Term) CoeffID() int {
	return int(t.CID)
}

// A LinearExpression is a linear combination of Term
type LinearExpression []Term

// Clone returns a copy of the underlying slice
func (l LinearExpression) Clone() LinearExpression {
	res := make(LinearExpression, len(l))
	copy(res, l)
	return res
}

// Compress appends the expression to the given []uint32 in the packed form
// [len, cID, vID, cID, vID, ...]
func (l LinearExpression) Compress(to *[]uint32) {
	(*to) = append((*to), uint32(len(l)))
	for i := 0; i < len(l); i++ {
		(*to) = append((*to), l[i].CID, l[i].VID)
	}
}

// R1C used to compute the wires; the solver ensures L ∘ R == O for the wire
// assignment.
type R1C struct {
	L, R, O LinearExpression
}

// Compress appends the constraint to the given []uint32 slice
func (r1c *R1C) Compress(to *[]uint32) {
	r1c.L.Compress(to)
	r1c.R.Compress(to)
	r1c.O.Compress(to)
}
