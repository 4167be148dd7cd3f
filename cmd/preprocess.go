package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cyber-Mitch/noir-backend-using-gnark/backend"
)

// preprocessCmd represents the preprocess command
var preprocessCmd = &cobra.Command{
	Use:   "preprocess [circuit.json]",
	Short: "runs the Groth16 setup for the circuit and writes the key pair",
	Run:   cmdPreprocess,
}

// sizeCmd represents the size command
var sizeCmd = &cobra.Command{
	Use:   "size [circuit.json]",
	Short: "prints the exact number of rank-1 constraints the circuit lowers to",
	Run:   cmdSize,
}

var (
	fPkPath string
	fVkPath string
)

func init() {
	rootCmd.AddCommand(preprocessCmd)
	preprocessCmd.PersistentFlags().StringVar(&fPkPath, "pk", "", "specifies full path for proving key -- default is ./[circuit].pk")
	preprocessCmd.PersistentFlags().StringVar(&fVkPath, "vk", "", "specifies full path for verifying key -- default is ./[circuit].vk")

	rootCmd.AddCommand(sizeCmd)
}

func cmdPreprocess(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing circuit path -- noir-groth16 preprocess -h for help")
		os.Exit(-1)
	}
	circuitPath := filepath.Clean(args[0])
	circuitName := baseName(circuitPath)

	rawR1CS, err := loadCircuit(circuitPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	pkPath := filepath.Join(".", circuitName+".pk")
	vkPath := filepath.Join(".", circuitName+".vk")
	if fPkPath != "" {
		pkPath = filepath.Clean(fPkPath)
	}
	if fVkPath != "" {
		vkPath = filepath.Clean(fVkPath)
	}

	start := time.Now()
	pk, vk, err := backend.Preprocess(rawR1CS)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	duration := time.Since(start)
	fmt.Printf("%-30s %-30s %-30s\n", "setup completed", circuitPath, duration)

	if err := os.WriteFile(pkPath, pk, 0600); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %s\n", "generated proving key", pkPath)
	if err := os.WriteFile(vkPath, vk, 0600); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %s\n", "generated verifying key", vkPath)
}

func cmdSize(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing circuit path -- noir-groth16 size -h for help")
		os.Exit(-1)
	}
	circuitPath := filepath.Clean(args[0])

	rawR1CS, err := loadCircuit(circuitPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	size, err := backend.GetExactCircuitSize(rawR1CS)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-d constraints\n", "loaded circuit", circuitPath, size)
}

func loadCircuit(circuitPath string) ([]byte, error) {
	if !fileExists(circuitPath) {
		return nil, errNotFound
	}
	return os.ReadFile(circuitPath)
}

func baseName(path string) string {
	name := filepath.Base(path)
	return name[0 : len(name)-len(filepath.Ext(name))]
}
