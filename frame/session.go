package frame

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/internal/stats"
	"github.com/go-sif/remoteframe/logging"
	"github.com/go-sif/remoteframe/plan"
	"github.com/gofrs/uuid"
)

// Session is a connection to one remote execution context. Frames from
// different Sessions cannot be combined.
type Session struct {
	collaborator remoteframe.Collaborator
	token        uuid.UUID
	logger       log.Logger
	stats        *stats.SessionStatistics
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithLogger sets the logger used by a Session
func WithLogger(logger log.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a Session which submits plans to collaborator
func NewSession(collaborator remoteframe.Collaborator, opts ...SessionOption) (*Session, error) {
	if collaborator == nil {
		return nil, fmt.Errorf("Session requires a collaborator")
	}
	token, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	s := &Session{collaborator: collaborator, token: token, stats: stats.NewSessionStatistics()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = log.With(logging.OrNop(s.logger), "session", token.String())
	return s, nil
}

// Token returns a unique identifier for this Session, for use in logs
func (s *Session) Token() string {
	return s.token.String()
}

// String returns a textual representation of this Session
func (s *Session) String() string {
	return fmt.Sprintf("Session(token=%s)", s.Token())
}

// Same returns true iff s and other are the same Session
func (s *Session) Same(other *Session) bool {
	return s == other
}

// Statistics returns statistics about the plans and fetches issued by this Session
func (s *Session) Statistics() remoteframe.RuntimeStatistics {
	return s.stats
}

// Collaborator returns the service this Session submits plans to
func (s *Session) Collaborator() remoteframe.Collaborator {
	return s.collaborator
}

// EntryPoint binds a dataset held by the remote query service, producing a frame
// whose history begins with that dataset
func (s *Session) EntryPoint(ctx context.Context, req remoteframe.EntryPointRequest) (*FetchableLazyFrame, error) {
	ref, err := s.collaborator.RegisterEntryPoint(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Unable to register entry point %s: %w", req.Identifier, err)
	}
	level.Debug(s.logger).Log("msg", "bound entry point", "dataset", req.Identifier, "identifier", ref.Identifier)
	return fromReference(s, ref)
}

// submit runs a composite plan, binding the result to this Session
func (s *Session) submit(ctx context.Context, segments plan.History) (*FetchableLazyFrame, error) {
	composite, err := segments.Serialize()
	if err != nil {
		return nil, err
	}
	fingerprint := fmt.Sprintf("%016x", plan.Fingerprint(composite))
	level.Debug(s.logger).Log("msg", "submitting plan", "fingerprint", fingerprint, "segments", segments.Len())
	start := time.Now()
	ref, err := s.collaborator.SubmitPlan(ctx, composite)
	s.stats.RecordPlan(start, err)
	if err != nil {
		level.Warn(s.logger).Log("msg", "plan failed", "fingerprint", fingerprint, "err", err)
		return nil, fmt.Errorf("Unable to collect remote data frame: %w", err)
	}
	level.Debug(s.logger).Log("msg", "plan complete", "fingerprint", fingerprint, "identifier", ref.Identifier)
	return fromReference(s, ref)
}
