// Package jasmine implements the "jasmine-node" build step: it runs the
// jasmine-node test runner over a project's specs folder and passes or fails
// the build step on its exit code.
//
// A step is configured per job through Config and shares the executable
// location held by settings.Store with every other jasmine-node step. The
// rendered command line is
//
//	<exe> --noColor [--coffee] [--junitreport] [--verbose] [--match <p>] [--include <p>] <specsFolder>
package jasmine
