// Package admin serves the administrative HTTP API for the process-wide
// jasmine-node settings.
//
// Routes:
//
//	GET  /settings                 current settings
//	PUT  /settings                 store applicationExecPath, answer with the advisory check
//	GET  /settings/check?value=    check a candidate executable path
//	GET  /health                   component health
//	GET  /version                  build identity
//	GET  /metrics                  Prometheus exposition
//
// When a JWT secret is configured the /settings routes require an HS256
// bearer token.
package admin
