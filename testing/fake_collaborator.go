package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/schema"
	"github.com/gofrs/uuid"
	"github.com/tidwall/gjson"
)

// Lookup finds a realized data frame held by a FakeCollaborator
type Lookup func(identifier string) (remoteframe.Schema, []byte, bool)

// Planner computes the result of a composite plan for a FakeCollaborator
type Planner func(plan string, lookup Lookup) (remoteframe.Schema, []byte, error)

// EntryPointPlanner is the default Planner. It returns the data frame bound to the
// first entry point of the plan, unmodified.
func EntryPointPlanner(plan string, lookup Lookup) (remoteframe.Schema, []byte, error) {
	if !gjson.Valid(plan) {
		return nil, nil, fmt.Errorf("plan is not valid JSON")
	}
	parsed := gjson.Parse(plan)
	if !parsed.IsArray() {
		return nil, nil, fmt.Errorf("plan must be an array of segments")
	}
	entryPoints := parsed.Get("#.EntryPointPlanSegment").Array()
	if len(entryPoints) == 0 {
		return nil, nil, fmt.Errorf("plan does not contain an entry point")
	}
	s, data, ok := lookup(entryPoints[0].String())
	if !ok {
		return nil, nil, fmt.Errorf("entry point %s is unknown", entryPoints[0].String())
	}
	return s, data, nil
}

type stored struct {
	schema remoteframe.Schema
	data   []byte
}

// FakeCollaborator is an in-memory Collaborator. Datasets are registered up front,
// and plans are evaluated by a Planner.
type FakeCollaborator struct {
	lock     sync.Mutex
	planner  Planner
	datasets map[string]stored
	frames   map[string]stored
	plans    []string
	failWith error
}

var _ remoteframe.Collaborator = &FakeCollaborator{}

// NewFakeCollaborator creates a FakeCollaborator. A nil planner defaults to EntryPointPlanner.
func NewFakeCollaborator(planner Planner) *FakeCollaborator {
	if planner == nil {
		planner = EntryPointPlanner
	}
	return &FakeCollaborator{
		planner:  planner,
		datasets: make(map[string]stored),
		frames:   make(map[string]stored),
	}
}

// RegisterDataset makes a dataset available to RegisterEntryPoint
func (f *FakeCollaborator) RegisterDataset(name string, s remoteframe.Schema, jsonLines []byte) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.datasets[name] = stored{schema: s.Clone(), data: append([]byte(nil), jsonLines...)}
}

// FailWith makes every subsequent call fail with err, until called again with nil
func (f *FakeCollaborator) FailWith(err error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.failWith = err
}

// Plans returns every plan submitted so far, in order
func (f *FakeCollaborator) Plans() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.plans...)
}

// lookup must be called while holding f.lock
func (f *FakeCollaborator) lookup(identifier string) (remoteframe.Schema, []byte, bool) {
	res, ok := f.frames[identifier]
	if !ok {
		return nil, nil, false
	}
	return res.schema, res.data, true
}

// bind must be called while holding f.lock
func (f *FakeCollaborator) bind(s remoteframe.Schema, data []byte) (remoteframe.Reference, error) {
	header, err := schema.EncodeHeader(s)
	if err != nil {
		return remoteframe.Reference{}, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return remoteframe.Reference{}, err
	}
	f.frames[id.String()] = stored{schema: s, data: data}
	return remoteframe.Reference{Identifier: id.String(), Header: header}, nil
}

// SubmitPlan evaluates plan with the Planner
func (f *FakeCollaborator) SubmitPlan(ctx context.Context, plan string) (remoteframe.Reference, error) {
	if err := ctx.Err(); err != nil {
		return remoteframe.Reference{}, err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.plans = append(f.plans, plan)
	if f.failWith != nil {
		return remoteframe.Reference{}, f.failWith
	}
	s, data, err := f.planner(plan, f.lookup)
	if err != nil {
		return remoteframe.Reference{}, err
	}
	return f.bind(s, data)
}

// FetchByIdentifier returns the JSON lines of a realized data frame
func (f *FakeCollaborator) FetchByIdentifier(ctx context.Context, identifier string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	_, data, ok := f.lookup(identifier)
	if !ok {
		return nil, fmt.Errorf("data frame %s is unknown", identifier)
	}
	return append([]byte(nil), data...), nil
}

// RegisterEntryPoint binds a registered dataset
func (f *FakeCollaborator) RegisterEntryPoint(ctx context.Context, req remoteframe.EntryPointRequest) (remoteframe.Reference, error) {
	if err := ctx.Err(); err != nil {
		return remoteframe.Reference{}, err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.failWith != nil {
		return remoteframe.Reference{}, f.failWith
	}
	ds, ok := f.datasets[req.Identifier]
	if !ok {
		return remoteframe.Reference{}, fmt.Errorf("dataset %s is unknown", req.Identifier)
	}
	return f.bind(ds.schema, ds.data)
}
