// Package publish drives a stored place file through the platform:
// authenticate, fetch an anti-forgery token, upload, fetch a second token,
// patch the place settings.
//
// The Orchestrator holds no per-call state and may be shared. Publishing
// with the same credential from two goroutines must be serialized by the
// caller; Serialized does that with a lock per credential.
//
// Outcomes are tri-state. A failure before the upload completes leaves no
// trace on the platform and is a Failure. Once the upload succeeds the place
// exists, so any later failure is a PartialSuccess carrying its id.
package publish
