// Package catalog holds the problem catalog of the AIOps benchmark and the
// validated, read-only Registry built from it.
//
// The catalog ships embedded in the binary as data/problems.yaml. A Registry
// is constructed once at process start and passed explicitly to the exporters;
// there is no package-level registry.
//
// Construction validates the whole catalog and reports every violation at
// once through a *ValidationError, so a broken entry surfaces as a
// configuration error instead of a failure deep inside an exporter.
package catalog
