// Package logger provides structured host-side logging using zerolog.
//
// Host logs describe what the step runner is doing (steps starting and
// finishing, settings changes, admin requests). The output of the test
// runner itself goes to the build log, see package buildlog.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("jasmine").WithBuild(build.ID())
//	log.Info("step finished", logger.Fields("exit_code", 0))
package logger
