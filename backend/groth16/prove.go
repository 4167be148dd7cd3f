// Package groth16 implements the Groth16 zkSNARK proving scheme over BN254:
// circuit-specific Setup, Prove and Verify.
package groth16

import (
	"errors"
	"math/big"
	"runtime"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/Cyber-Mitch/noir-backend-using-gnark/constraint"
	"github.com/Cyber-Mitch/noir-backend-using-gnark/internal/utils"
	"github.com/Cyber-Mitch/noir-backend-using-gnark/logger"
	"github.com/Cyber-Mitch/noir-backend-using-gnark/witness"
)

// Proof represents a Groth16 proof that was encoded with a ProvingKey and can be verified
// with a valid statement and a VerifyingKey
type Proof struct {
	Ar, Krs curve.G1Affine
	Bs      curve.G2Affine
}

// ErrKeyCircuitMismatch is returned when a key was generated for another circuit
var ErrKeyCircuitMismatch = errors.New("groth16: key does not match the circuit")

// Prove generates the proof of knowledge of a witness satisfying r1cs, using
// the provided proving key.
func Prove(r1cs *constraint.R1CS, pk *ProvingKey, fullWitness *witness.Witness) (*Proof, error) {
	log := logger.Logger().With().Str("curve", "bn254").Int("nbConstraints", r1cs.GetNbConstraints()).Str("backend", "groth16").Logger()

	digest := r1cs.CircuitDigest()
	if !pk.CircuitDigest.Equal(&digest) {
		return nil, ErrKeyCircuitMismatch
	}

	solution, err := r1cs.Solve(fullWitness.Vector)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	// H (witness reduction / FFT part)
	var h []fr.Element
	chHDone := make(chan struct{}, 1)
	go func() {
		h = computeH(solution.A, solution.B, solution.C, &pk.Domain)
		solution.A = nil
		solution.B = nil
		solution.C = nil
		chHDone <- struct{}{}
	}()

	// sample random r and s
	var r, s big.Int
	var _r, _s, _kr fr.Element
	if _, err := _r.SetRandom(); err != nil {
		return nil, err
	}
	if _, err := _s.SetRandom(); err != nil {
		return nil, err
	}
	_kr.Mul(&_r, &_s).Neg(&_kr)
	_r.BigInt(&r)
	_s.BigInt(&s)

	// computes r[δ], s[δ], kr[δ]
	deltas := curve.BatchScalarMultiplicationG1(&pk.G1.Delta, []fr.Element{_r, _s, _kr})

	wireValues := solution.W
	nbPublicWires := r1cs.GetNbPublicVariables()

	proof := &Proof{}
	var bs1, ar curve.G1Jac

	nbTasks := runtime.NumCPU()
	if nbTasks > 4 {
		// the multi exps run concurrently
		nbTasks /= 2
	}
	mec := ecc.MultiExpConfig{NbTasks: nbTasks}

	chBs1Done := make(chan error, 1)
	computeBS1 := func() {
		if _, err := bs1.MultiExp(pk.G1.B, wireValues, mec); err != nil {
			chBs1Done <- err
			return
		}
		bs1.AddMixed(&pk.G1.Beta)
		bs1.AddMixed(&deltas[1])
		chBs1Done <- nil
	}

	chArDone := make(chan error, 1)
	computeAR1 := func() {
		if _, err := ar.MultiExp(pk.G1.A, wireValues, mec); err != nil {
			chArDone <- err
			return
		}
		ar.AddMixed(&pk.G1.Alpha)
		ar.AddMixed(&deltas[0])
		proof.Ar.FromJacobian(&ar)
		chArDone <- nil
	}

	chKrsDone := make(chan error, 1)
	computeKRS := func() {
		// we could NOT split the Krs multi exp in 2, and just append pk.G1.K and pk.G1.Z
		// however, having similar lengths for our tasks helps with parallelism
		var krs, krs2, p1 curve.G1Jac
		chKrs2Done := make(chan error, 1)
		go func() {
			_, err := krs2.MultiExp(pk.G1.Z, h[:len(pk.G1.Z)], mec)
			chKrs2Done <- err
		}()

		if _, err := krs.MultiExp(pk.G1.K, wireValues[nbPublicWires:], mec); err != nil {
			chKrsDone <- err
			return
		}
		krs.AddMixed(&deltas[2])
		n := 3
		for n != 0 {
			select {
			case err := <-chKrs2Done:
				if err != nil {
					chKrsDone <- err
					return
				}
				krs.AddAssign(&krs2)
			case err := <-chArDone:
				if err != nil {
					chKrsDone <- err
					return
				}
				p1.ScalarMultiplication(&ar, &s)
				krs.AddAssign(&p1)
			case err := <-chBs1Done:
				if err != nil {
					chKrsDone <- err
					return
				}
				p1.ScalarMultiplication(&bs1, &r)
				krs.AddAssign(&p1)
			}
			n--
		}

		proof.Krs.FromJacobian(&krs)
		chKrsDone <- nil
	}

	computeBS2 := func() error {
		// Bs2 (1 multi exp G2 - size = len(wires))
		var Bs, deltaS curve.G2Jac
		if _, err := Bs.MultiExp(pk.G2.B, wireValues, mec); err != nil {
			return err
		}

		deltaS.FromAffine(&pk.G2.Delta)
		deltaS.ScalarMultiplication(&deltaS, &s)
		Bs.AddAssign(&deltaS)
		Bs.AddMixed(&pk.G2.Beta)

		proof.Bs.FromJacobian(&Bs)
		return nil
	}

	// wait for FFT to end, as it uses all our CPUs
	<-chHDone

	// schedule our proof part computations
	go computeKRS()
	go computeAR1()
	go computeBS1()
	if err := computeBS2(); err != nil {
		return nil, err
	}

	// wait for all parts of the proof to be computed.
	if err := <-chKrsDone; err != nil {
		return nil, err
	}

	log.Debug().Dur("took", time.Since(start)).Msg("prover done")

	return proof, nil
}

func computeH(a, b, c []fr.Element, domain *fft.Domain) []fr.Element {
	// H part of Krs
	// Compute H (hz=ab-c, where z=-2 on ker X^n+1 (z(x)=x^n-1))
	// 	1 - _a = ifft(a), _b = ifft(b), _c = ifft(c)
	// 	2 - ca = fft_coset(_a), ba = fft_coset(_b), cc = fft_coset(_c)
	// 	3 - h = ifft_coset(ca o cb - cc)

	n := len(a)

	// add padding to ensure input length is domain cardinality
	padding := make([]fr.Element, int(domain.Cardinality)-n)
	a = append(a, padding...)
	b = append(b, padding...)
	c = append(c, padding...)
	n = len(a)

	domain.FFTInverse(a, fft.DIF)
	domain.FFTInverse(b, fft.DIF)
	domain.FFTInverse(c, fft.DIF)

	domain.FFT(a, fft.DIT, fft.OnCoset())
	domain.FFT(b, fft.DIT, fft.OnCoset())
	domain.FFT(c, fft.DIT, fft.OnCoset())

	var den, one fr.Element
	one.SetOne()
	den.Exp(domain.FrMultiplicativeGen, big.NewInt(int64(domain.Cardinality)))
	den.Sub(&den, &one).Inverse(&den)

	// h = ifft_coset(ca o cb - cc)
	// reusing a to avoid unnecessary memory allocation
	utils.Parallelize(n, func(start, end int) {
		for i := start; i < end; i++ {
			a[i].Mul(&a[i], &b[i]).
				Sub(&a[i], &c[i]).
				Mul(&a[i], &den)
		}
	})

	// ifft_coset; the DIF transform leaves the coefficients in bit-reversed
	// order
	domain.FFTInverse(a, fft.DIF, fft.OnCoset())
	fft.BitReverse(a)

	return a
}
