package frame

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/log/level"
	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/lazy"
	"github.com/go-sif/remoteframe/plan"
	"github.com/go-sif/remoteframe/schema"
	"github.com/go-sif/remoteframe/table"
)

// FetchableLazyFrame is a RemoteLazyFrame bound to a dataframe already held by the
// remote query service, which can therefore be fetched
type FetchableLazyFrame struct {
	*RemoteLazyFrame
	identifier string
}

// fromReference binds a Reference returned by the remote query service to a Session
func fromReference(s *Session, ref remoteframe.Reference) (*FetchableLazyFrame, error) {
	if ref.Identifier == "" {
		return nil, fmt.Errorf("remote query service returned an empty identifier")
	}
	sch, err := schema.DecodeHeader(ref.Header)
	if err != nil {
		return nil, fmt.Errorf("Unable to bind remote data frame %s: %w", ref.Identifier, err)
	}
	return &FetchableLazyFrame{
		RemoteLazyFrame: &RemoteLazyFrame{
			local: lazy.Empty(sch),
			meta:  Metadata{session: s, history: plan.NewHistory(plan.EntryPoint{Identifier: ref.Identifier})},
		},
		identifier: ref.Identifier,
	}, nil
}

// Identifier returns the identifier of this frame on the remote query service
func (f *FetchableLazyFrame) Identifier() string {
	return f.identifier
}

// String returns a short description of this frame
func (f *FetchableLazyFrame) String() string {
	return fmt.Sprintf("FetchableLazyFrame(identifier=%s)", f.identifier)
}

// Fetch realizes this frame. Every call queries the remote query service.
func (f *FetchableLazyFrame) Fetch(ctx context.Context) (*table.DataFrame, error) {
	s := f.meta.session
	start := time.Now()
	data, err := s.collaborator.FetchByIdentifier(ctx, f.identifier)
	if err != nil {
		return nil, fmt.Errorf("Unable to fetch remote data frame %s: %w", f.identifier, err)
	}
	s.stats.RecordFetch(start, len(data))
	level.Debug(s.logger).Log("msg", "fetched data frame", "identifier", f.identifier, "bytes", len(data))
	return table.FromJSONLines(f.local.Schema(), data)
}
