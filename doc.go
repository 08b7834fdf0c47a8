// Package remoteframe contains the core components of remoteframe, a client for building
// deferred dataframe transformations which are executed by a remote query service.
// This root package defines the types shared by the rest of the module (data types,
// Schemas and the Collaborator which executes composite plans), and is a good overview
// of its key concepts.
package remoteframe
