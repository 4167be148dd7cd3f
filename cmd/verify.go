package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cyber-Mitch/noir-backend-using-gnark/backend"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [circuit.json]",
	Short: "verifies a proof against a verifying key and public inputs",
	Run:   cmdVerify,
}

var (
	fVerifyVkPath string
	fInputPath    string
)

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.PersistentFlags().StringVar(&fProofPath, "proof", "", "specifies full path for proof -- default is ./[circuit].proof")
	verifyCmd.PersistentFlags().StringVar(&fVerifyVkPath, "vk", "", "specifies full path for verifying key; omit to run a fresh setup")
	verifyCmd.PersistentFlags().StringVar(&fInputPath, "input", "", "specifies full path for hex encoded public inputs; required with --vk")
}

func cmdVerify(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing circuit path -- noir-groth16 verify -h for help")
		os.Exit(-1)
	}
	circuitPath := filepath.Clean(args[0])
	circuitName := baseName(circuitPath)

	proofPath := filepath.Join(".", circuitName+".proof")
	if fProofPath != "" {
		proofPath = filepath.Clean(fProofPath)
	}
	if !fileExists(proofPath) {
		fmt.Println(proofPath, errNotFound)
		os.Exit(-1)
	}
	proof, err := os.ReadFile(proofPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	var verified bool
	start := time.Now()
	if fVerifyVkPath != "" {
		if fInputPath == "" {
			fmt.Println("missing public inputs path -- --input is required with --vk")
			os.Exit(-1)
		}
		fVerifyVkPath = filepath.Clean(fVerifyVkPath)
		if !fileExists(fVerifyVkPath) {
			fmt.Println(fVerifyVkPath, errNotFound)
			os.Exit(-1)
		}
		vk, err := os.ReadFile(fVerifyVkPath)
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		publicInputs, err := os.ReadFile(filepath.Clean(fInputPath))
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		verified, err = backend.VerifyWithVK(vk, publicInputs, proof)
		if err != nil {
			fmt.Println("error proof verification:", err)
			os.Exit(-1)
		}
	} else {
		rawR1CS, err := loadCircuit(circuitPath)
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		verified, err = backend.VerifyWithMeta(rawR1CS, proof)
		if err != nil {
			fmt.Println("error proof verification:", err)
			os.Exit(-1)
		}
	}
	duration := time.Since(start)

	fmt.Printf("%-30s %-30v %-30s\n", "proof verified", verified, duration)
	if !verified {
		os.Exit(-1)
	}
}
