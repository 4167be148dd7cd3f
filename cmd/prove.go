package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cyber-Mitch/noir-backend-using-gnark/backend"
)

// proveCmd represents the prove command
var proveCmd = &cobra.Command{
	Use:   "prove [circuit.json]",
	Short: "creates a (zk)proof for the circuit's witness",
	Run:   cmdProve,
}

var (
	fProofPath   string
	fProvePkPath string
)

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.PersistentFlags().StringVar(&fProofPath, "proof", "", "specifies full path for proof -- default is ./[circuit].proof")
	proveCmd.PersistentFlags().StringVar(&fProvePkPath, "pk", "", "specifies full path for proving key; omit to run a fresh setup")
}

func cmdProve(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing circuit path -- noir-groth16 prove -h for help")
		os.Exit(-1)
	}
	circuitPath := filepath.Clean(args[0])
	circuitName := baseName(circuitPath)

	rawR1CS, err := loadCircuit(circuitPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	var proof []byte
	start := time.Now()
	if fProvePkPath != "" {
		fProvePkPath = filepath.Clean(fProvePkPath)
		if !fileExists(fProvePkPath) {
			fmt.Println(fProvePkPath, errNotFound)
			os.Exit(-1)
		}
		pk, err := os.ReadFile(fProvePkPath)
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		proof, err = backend.ProveWithPK(rawR1CS, pk)
		if err != nil {
			fmt.Println("error proof generation:", err)
			os.Exit(-1)
		}
	} else {
		proof, err = backend.ProveWithMeta(rawR1CS)
		if err != nil {
			fmt.Println("error proof generation:", err)
			os.Exit(-1)
		}
	}
	duration := time.Since(start)

	proofPath := filepath.Join(".", circuitName+".proof")
	if fProofPath != "" {
		proofPath = filepath.Clean(fProofPath)
	}
	if err := os.WriteFile(proofPath, proof, 0600); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	fmt.Printf("%-30s %-30s %-30s\n", "generated proof", proofPath, duration)
}
