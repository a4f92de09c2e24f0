// Package domain contains the core entities of the mailvec pipeline.
// It has no dependencies on adapters or external libraries.
package domain
