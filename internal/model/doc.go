// Package model defines the core data structures of the problem registry.
//
// This package contains the following main types:
//   - Problem: One evaluation scenario of the AIOps benchmark
//   - TaskKind: The category of question a problem poses (detection, localization, ...)
//   - Solution: The typed form of a problem's expected solution
//   - TaskType: Static metadata describing each task kind
//   - Summary: Tallies computed over a list of problems
//
// The models are designed to be serializable to JSON, YAML and CSV so that
// the catalog, the exporters and the history database share one shape.
package model
