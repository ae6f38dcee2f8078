// Package config provides configuration structures and utilities for
// problemreg. It defines where exports are written, which formats are
// produced, which catalog is loaded and whether export snapshots are kept.
package config
