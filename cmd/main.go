// noir-groth16 is a CLI around the backend operations: preprocess a circuit
// into a key pair, compute its exact size, produce and check proofs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	noirbackend "github.com/Cyber-Mitch/noir-backend-using-gnark"
)

var rootCmd = &cobra.Command{
	Use:     "noir-groth16",
	Short:   "Groth16 proving backend for raw-gate circuits (BN254)",
	Version: noirbackend.Version.String(),
}

var errNotFound = errors.New("file does not exist")

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
