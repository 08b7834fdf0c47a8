package integration

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/frame"
	"github.com/go-sif/remoteframe/server"
	rftest "github.com/go-sif/remoteframe/testing"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// stackingPlanner evaluates the entry points of a plan and, for a plan containing a
// stack marker, concatenates their rows in plan order. Local plans are not evaluated.
func stackingPlanner(plan string, lookup rftest.Lookup) (remoteframe.Schema, []byte, error) {
	stacked := false
	for _, segment := range gjson.Parse(plan).Array() {
		if segment.Type == gjson.String && segment.String() == "StackPlanSegment" {
			stacked = true
		}
	}
	if !stacked {
		return rftest.EntryPointPlanner(plan, lookup)
	}
	var s remoteframe.Schema
	var buf bytes.Buffer
	for _, id := range gjson.Get(plan, "#.EntryPointPlanSegment").Array() {
		sch, data, ok := lookup(id.String())
		if !ok {
			return nil, nil, fmt.Errorf("entry point %s is unknown", id.String())
		}
		if s == nil {
			s = sch
		}
		buf.Write(data)
	}
	if s == nil {
		return nil, nil, fmt.Errorf("plan does not contain an entry point")
	}
	return s, buf.Bytes(), nil
}

// runTestSession serves collaborator over an in-process gRPC connection, returning a
// Session bound to it and a function which shuts both down
func runTestSession(t *testing.T, collaborator remoteframe.Collaborator, opts *server.Options) (*frame.Session, func()) {
	c, stop, err := rftest.LocalServe(collaborator, opts, nil)
	require.Nil(t, err)
	s, err := frame.NewSession(c)
	require.Nil(t, err)
	return s, stop
}
