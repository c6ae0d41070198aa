// Package buildlog is the build console a step writes to.
//
// Raw process output is written through as-is. Fatal and warning entries are
// rendered through zerolog on the same stream, so they stand out from the
// test runner's own output and can be recognised by log processors.
package buildlog
