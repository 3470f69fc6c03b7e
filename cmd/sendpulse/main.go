package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd, cc := NewRootCommand()

	err := rootCmd.Execute()
	cc.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
