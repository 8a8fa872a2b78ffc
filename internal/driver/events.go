package driver

import "context"

// Stage is the step a file is in.
type Stage uint8

const (
	StageQueued Stage = iota
	StageExtract
	StageParse
	StageCache
)

func (s Stage) String() string {
	switch s {
	case StageExtract:
		return "extract"
	case StageParse:
		return "parse"
	case StageCache:
		return "cache"
	default:
		return "queued"
	}
}

type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports progress of one file; an empty File describes the whole run.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	// Comments is set on StatusDone.
	Comments int
}

// emit blocks until the consumer takes ev or ctx is cancelled.
func emit(ctx context.Context, ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}
