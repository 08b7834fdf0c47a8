// Package testing provides utilities for testing code built on remoteframe:
// an in-memory Collaborator and a harness which serves a Collaborator over an
// in-process gRPC connection. It is conventionally imported as rftest.
package testing
