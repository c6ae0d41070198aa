// Package settings holds the process-wide configuration shared by every
// jasmine-node build step: the optional path to the jasmine-node executable.
//
// The value lives in a single Store backed by a YAML file. It is loaded once
// at startup, read once per build, and changed only through Store.Set, which
// persists it immediately.
//
//	applicationExecPath: /usr/local/bin/jasmine-node
package settings
