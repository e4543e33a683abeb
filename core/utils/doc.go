// Package utils provides common filesystem helpers for parity-check.
// It holds shared logic that doesn't fit into a domain-specific package,
// such as preparing the local folders each source is downloaded into.
package utils
