// Package main provides the entry point for the problemreg CLI.
//
// problemreg exports the AIOpsLab benchmark problem registry to JSON, CSV
// and text files and prints a summary of the catalog.
//
// Usage:
//
//	problemreg
//	problemreg export --dir out --format json,csv,txt,md
//
// See --help for all available options.
package main

// main is the entry point for problemreg.
func main() {
	Execute()
}
