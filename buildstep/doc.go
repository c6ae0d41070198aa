// Package buildstep is the host side of build steps: the Build a step runs
// against, the Builder contract every step type implements, and the Registry
// that maps a step type name to the factory that binds its form.
//
// A job is an ordered list of steps, each a form keyed by "type":
//
//	steps:
//	  - type: jasmine-node
//	    useCoffee: true
//	    specsFolder: spec/unit
package buildstep
