// Package interpolation expands ${VAR} and ${VAR:default} references in configuration strings.
package interpolation
