package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/memtree/memtree/cmd"
)

func main() {
	err := cmd.Run()
	if err == nil {
		return
	}
	// Friendly not-found and usage paths have already printed their message
	var ece cmd.ExitCodeError
	if errors.As(err, &ece) {
		os.Exit(ece.Code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
