// Package main provides the shelf CLI.
package main

import "github.com/mesh-intelligence/shelves/internal/cli"

func main() {
	cli.Execute()
}
