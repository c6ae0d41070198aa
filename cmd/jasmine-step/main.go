// Command jasmine-step runs jasmine-node build steps and administers the
// shared jasmine-node settings.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
