// Package kernel holds the value objects shared by every aggregate of the dispatch domain.
package kernel
