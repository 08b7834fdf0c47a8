package lazy

// NodeKind describes the type of a plan Node
type NodeKind string

const (
	// ScanNodeKind indicates that this node sources rows from an (empty) in-memory frame
	ScanNodeKind NodeKind = "scan"
	// TransformNodeKind indicates that this node changes the rows of a single input
	TransformNodeKind NodeKind = "transform"
	// ProjectNodeKind indicates that this node changes the columns of a single input
	ProjectNodeKind NodeKind = "project"
	// AggregateNodeKind indicates that this node reduces its input
	AggregateNodeKind NodeKind = "aggregate"
	// JoinNodeKind indicates that this node merges two inputs
	JoinNodeKind NodeKind = "join"
	// CacheNodeKind indicates that this node caches its input
	CacheNodeKind NodeKind = "cache"
)
