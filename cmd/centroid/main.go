// Command centroid decomposes trees and writes test trees.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "centroid:", err)
		os.Exit(1)
	}
}
