package groth16

import (
	"errors"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Cyber-Mitch/noir-backend-using-gnark/logger"
)

var (
	// ErrInvalidWitness is returned when the public witness size does not match the verifying key
	ErrInvalidWitness = errors.New("groth16: invalid witness size")

	// ErrProofRejected is returned when the pairing check fails; the proof
	// does not attest the statement.
	ErrProofRejected = errors.New("groth16: proof rejected")
)

// Verify checks the proof against the verifying key and the public inputs
// (without the constant one wire). A nil return means the proof is valid.
func Verify(proof *Proof, vk *VerifyingKey, publicWitness fr.Vector) error {
	if len(publicWitness) != vk.NbPublicWitness() {
		return ErrInvalidWitness
	}
	log := logger.Logger().With().Str("curve", "bn254").Str("backend", "groth16").Logger()
	start := time.Now()

	// fold the public inputs: kSum = Σ w_i * K_i + K_0
	var kSum curve.G1Jac
	if _, err := kSum.MultiExp(vk.G1.K[1:], publicWitness, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	kSum.AddMixed(&vk.G1.K[0])
	var kSumAff curve.G1Affine
	kSumAff.FromJacobian(&kSum)

	// e(Ar, Bs) * e(kSum, -γ) * e(Krs, -δ) == e(α, β)
	right, err := curve.MillerLoop(
		[]curve.G1Affine{kSumAff, proof.Krs, proof.Ar},
		[]curve.G2Affine{vk.gammaNeg, vk.deltaNeg, proof.Bs},
	)
	if err != nil {
		return err
	}
	right = curve.FinalExponentiation(&right)
	if !vk.e.Equal(&right) {
		return ErrProofRejected
	}

	log.Debug().Dur("took", time.Since(start)).Msg("verifier done")
	return nil
}
