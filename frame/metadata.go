package frame

import (
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/plan"
)

// Metadata is the part of a frame handle which is not tracked by its local plan:
// the owning Session and the plan segments recorded so far
type Metadata struct {
	session *Session
	history plan.History
}

// Session returns the Session which owns this Metadata
func (m Metadata) Session() *Session {
	return m.session
}

// History returns the plan segments recorded so far
func (m Metadata) History() plan.History {
	return m.history
}

func (m Metadata) withHistory(h plan.History) Metadata {
	return Metadata{session: m.session, history: h}
}

// checkSession fails with a CrossSessionError unless m and other share a Session
func (m Metadata) checkSession(other Metadata, operation string) error {
	if !m.session.Same(other.session) {
		return errors.CrossSessionError{Operation: operation}
	}
	return nil
}
