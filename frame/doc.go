// Package frame provides handles to dataframes held by a remote query service.
//
// A RemoteLazyFrame pairs a local plan, which tracks the schema of every
// transformation applied so far, with the history of plan segments which
// cannot be expressed locally (entry points, joins, stacks and user-defined
// functions). Collecting a frame ships the whole history to the service as
// one composite plan.
package frame
