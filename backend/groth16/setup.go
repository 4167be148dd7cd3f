package groth16

import (
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/Cyber-Mitch/noir-backend-using-gnark/constraint"
)

// ProvingKey is used by a Groth16 prover to encode a proof of a statement
type ProvingKey struct {
	// domain
	Domain fft.Domain

	// [α]1, [β]1, [δ]1
	// [A(t)]1, [B(t)]1, [Kpk(t)]1, [Z(t)]1
	G1 struct {
		Alpha, Beta, Delta curve.G1Affine
		A, B, Z            []curve.G1Affine
		K                  []curve.G1Affine // the indexes correspond to the private wires
	}

	// [β]2, [δ]2, [B(t)]2
	G2 struct {
		Beta, Delta curve.G2Affine
		B           []curve.G2Affine
	}

	// commitment to the circuit the key was generated for
	CircuitDigest fr.Element
}

// VerifyingKey is used by a Groth16 verifier to verify the validity of a proof and a statement
type VerifyingKey struct {
	// [α]1, [Kvk]1
	G1 struct {
		Alpha curve.G1Affine
		K     []curve.G1Affine // The indexes correspond to the public wires
	}

	// [β]2, [γ]2, [δ]2
	G2 struct {
		Beta, Gamma, Delta curve.G2Affine
	}

	// commitment to the circuit the key was generated for
	CircuitDigest fr.Element

	// e(α, β) and the negated G2 points, precomputed once per key
	e                  curve.GT
	gammaNeg, deltaNeg curve.G2Affine
}

// Setup constructs the proving and verifying keys for the given constraint
// system. The toxic waste (t, α, β, γ, δ) is sampled locally and discarded;
// two runs over the same system yield different, incompatible key pairs.
func Setup(r1cs *constraint.R1CS) (*ProvingKey, *VerifyingKey, error) {
	nbWires := r1cs.GetNbWires()
	nbPublicWires := r1cs.GetNbPublicVariables()
	nbPrivateWires := nbWires - nbPublicWires
	nbConstraints := r1cs.GetNbConstraints()

	var pk ProvingKey
	var vk VerifyingKey

	// each public wire occupies one extra gate, so that its QAP polynomial
	// cannot vanish (see solve and computeH)
	domain := fft.NewDomain(uint64(nbConstraints + nbPublicWires))
	pk.Domain = *domain

	tw, err := sampleToxicWaste()
	if err != nil {
		return nil, nil, err
	}

	// evaluation of the QAP polynomials A, B, C at t, per wire
	A, B, C := setupABC(r1cs, domain, tw)

	// z_j = t^j * (t^n - 1) / δ, the [Z(t)]1 part of the proving key
	var one, zdt fr.Element
	one.SetOne()
	zdt.Exp(tw.t, big.NewInt(int64(domain.Cardinality))).
		Sub(&zdt, &one).
		Div(&zdt, &tw.delta)
	Z := make([]fr.Element, domain.Cardinality-1)
	for i := range Z {
		Z[i] = zdt
		zdt.Mul(&zdt, &tw.t)
	}

	// pk.K (private wires) and vk.K (public wires):
	// K_i = (β*A_i + α*B_i + C_i) / (δ | γ)
	pkK := make([]fr.Element, nbPrivateWires)
	vkK := make([]fr.Element, nbPublicWires)
	var t fr.Element
	for i := 0; i < nbWires; i++ {
		t.Mul(&A[i], &tw.beta)
		t.Add(&t, &C[i])
		var tt fr.Element
		tt.Mul(&B[i], &tw.alpha)
		t.Add(&t, &tt)
		if i < nbPublicWires {
			vkK[i].Div(&t, &tw.gamma)
		} else {
			pkK[i-nbPublicWires].Div(&t, &tw.delta)
		}
	}

	_, _, g1, g2 := curve.Generators()

	// G1 part: [α β δ | A | B | Z | Kpk]
	g1Scalars := make([]fr.Element, 0, 3+2*nbWires+len(Z)+len(pkK))
	g1Scalars = append(g1Scalars, tw.alpha, tw.beta, tw.delta)
	g1Scalars = append(g1Scalars, A...)
	g1Scalars = append(g1Scalars, B...)
	g1Scalars = append(g1Scalars, Z...)
	g1Scalars = append(g1Scalars, pkK...)

	g1Points := curve.BatchScalarMultiplicationG1(&g1, g1Scalars)
	pk.G1.Alpha = g1Points[0]
	pk.G1.Beta = g1Points[1]
	pk.G1.Delta = g1Points[2]
	offset := 3
	pk.G1.A = g1Points[offset : offset+nbWires]
	offset += nbWires
	pk.G1.B = g1Points[offset : offset+nbWires]
	offset += nbWires
	pk.G1.Z = g1Points[offset : offset+len(Z)]
	offset += len(Z)
	pk.G1.K = g1Points[offset:]

	// G2 part: [β δ γ | B]
	g2Scalars := make([]fr.Element, 0, 3+nbWires)
	g2Scalars = append(g2Scalars, tw.beta, tw.delta, tw.gamma)
	g2Scalars = append(g2Scalars, B...)

	g2Points := curve.BatchScalarMultiplicationG2(&g2, g2Scalars)
	pk.G2.Beta = g2Points[0]
	pk.G2.Delta = g2Points[1]
	pk.G2.B = g2Points[3:]

	vk.G1.Alpha = pk.G1.Alpha
	vk.G1.K = curve.BatchScalarMultiplicationG1(&g1, vkK)
	vk.G2.Beta = g2Points[0]
	vk.G2.Delta = g2Points[1]
	vk.G2.Gamma = g2Points[2]

	digest := r1cs.CircuitDigest()
	pk.CircuitDigest = digest
	vk.CircuitDigest = digest

	if err := vk.Precompute(); err != nil {
		return nil, nil, err
	}

	return &pk, &vk, nil
}

// Precompute sets the pairing and negated-point material the verifier needs.
// It is called by Setup and by VerifyingKey.ReadFrom.
func (vk *VerifyingKey) Precompute() error {
	e, err := curve.Pair([]curve.G1Affine{vk.G1.Alpha}, []curve.G2Affine{vk.G2.Beta})
	if err != nil {
		return err
	}
	vk.e = e
	vk.gammaNeg.Neg(&vk.G2.Gamma)
	vk.deltaNeg.Neg(&vk.G2.Delta)
	return nil
}

// NbPublicWitness returns the number of public inputs the verifier expects,
// without the constant one wire.
func (vk *VerifyingKey) NbPublicWitness() int {
	return len(vk.G1.K) - 1
}

// toxicWaste is the secret material sampled by the setup; it never leaves it
type toxicWaste struct {
	t, alpha, beta, gamma, delta fr.Element
}

func sampleToxicWaste() (toxicWaste, error) {
	var tw toxicWaste
	for _, e := range []*fr.Element{&tw.t, &tw.alpha, &tw.beta, &tw.gamma, &tw.delta} {
		if _, err := e.SetRandom(); err != nil {
			return tw, err
		}
	}
	return tw, nil
}

// setupABC evaluates the QAP polynomials of every wire at t, in the Lagrange
// basis of the evaluation domain:
// L_0 = (t^n - 1) / (n * (t - 1)), L_{j+1} = w * L_j * (t - w^j) / (t - w^(j+1))
func setupABC(r1cs *constraint.R1CS, domain *fft.Domain, tw toxicWaste) (A, B, C []fr.Element) {
	nbWires := r1cs.GetNbWires()

	A = make([]fr.Element, nbWires)
	B = make([]fr.Element, nbWires)
	C = make([]fr.Element, nbWires)

	var one fr.Element
	one.SetOne()

	// L_j, the j-th Lagrange polynomial evaluated at t
	var L, w, wj, tmp fr.Element
	w.Set(&domain.Generator)
	wj.SetOne()

	L.Exp(tw.t, big.NewInt(int64(domain.Cardinality))).
		Sub(&L, &one)
	tmp.Sub(&tw.t, &one)
	L.Div(&L, &tmp).
		Mul(&L, &domain.CardinalityInv)

	nextLagrange := func() {
		// L_{j+1} = w * L_j * (t - w^j) / (t - w^(j+1))
		L.Mul(&L, &w)
		tmp.Sub(&tw.t, &wj)
		L.Mul(&L, &tmp)
		wj.Mul(&wj, &w)
		tmp.Sub(&tw.t, &wj)
		L.Div(&L, &tmp)
	}

	accumulate := func(dst []fr.Element, l constraint.LinearExpression) {
		for _, term := range l {
			tmp.Mul(&L, &r1cs.Coefficients[term.CID])
			dst[term.VID].Add(&dst[term.VID], &tmp)
		}
	}

	for _, c := range r1cs.Constraints {
		accumulate(A, c.L)
		accumulate(B, c.R)
		accumulate(C, c.O)
		nextLagrange()
	}

	// one gate per public wire: A_i += L_{nbConstraints+i}
	for i := 0; i < r1cs.GetNbPublicVariables(); i++ {
		A[i].Add(&A[i], &L)
		nextLagrange()
	}

	return A, B, C
}
