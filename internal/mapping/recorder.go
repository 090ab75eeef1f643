package mapping

import "context"

// Op names a change to a mapping document or a run that used one.
type Op string

const (
	OpPropose   Op = "propose"
	OpEdit      Op = "edit"
	OpAdd       Op = "add"
	OpResolve   Op = "resolve"
	OpUndo      Op = "undo"
	OpSave      Op = "save"
	OpTransform Op = "transform"
)

// Change describes one successful mutation. Before and After are JSON
// encodable snapshots of the affected values. Path is the file written or
// read by save and transform.
type Change struct {
	Op          Op
	SourceField string
	Path        string
	Summary     string
	Before      any
	After       any
}

// Recorder receives every successful mutation, for example to keep an
// audit trail. Recording failures never fail the mutation itself.
type Recorder interface {
	RecordChange(ctx context.Context, c Change) error
}
