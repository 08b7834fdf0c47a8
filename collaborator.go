package remoteframe

import "context"

// Reference identifies a dataframe held by the remote query service,
// along with a header describing its Schema (e.g. {"inner":{"col":"Int64"}})
type Reference struct {
	Identifier string
	Header     string
}

// EntryPointRequest asks the remote query service to bind a previously
// registered dataset, so that it can be used as the root of a composite plan
type EntryPointRequest struct {
	Identifier  string // identifier of the dataset on the remote query service
	Description string // optional human-readable description of the request
}

// A Collaborator executes composite plans on behalf of the client. Implementations
// must be safe for concurrent use, since independently derived frames may
// collect or fetch from different goroutines.
type Collaborator interface {
	// SubmitPlan runs a serialized composite plan and returns a Reference to the result
	SubmitPlan(ctx context.Context, plan string) (Reference, error)
	// FetchByIdentifier realizes a dataframe held by the service, returning it as JSON lines
	FetchByIdentifier(ctx context.Context, identifier string) ([]byte, error)
	// RegisterEntryPoint binds a dataset held by the service and returns a Reference to it
	RegisterEntryPoint(ctx context.Context, req EntryPointRequest) (Reference, error)
}
