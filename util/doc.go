// Package util holds small helpers shared by the step runner packages.
package util
