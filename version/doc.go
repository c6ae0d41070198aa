// Package version reports the build identity of the jasmine-step binary.
//
// Release builds stamp it with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/jasmine-step/version.Version=1.2.0 \
//	  -X github.com/kbukum/jasmine-step/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Anything left unset is filled from the module's embedded VCS build info.
package version
