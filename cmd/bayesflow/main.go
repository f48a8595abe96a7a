// Package main provides the BayesFlow CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("BayesFlow %s\n", version)
		return
	}

	fmt.Println("BayesFlow - Amortized Bayesian Inference for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
}
