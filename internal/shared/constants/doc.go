// Package constants centralizes defaults shared across the CLI.
//
// File permissions, body drain limits, refresh intervals and extension asset
// parameters live here so cmd/ and internal/ reference the same values
// without introducing import cycles.
package constants
