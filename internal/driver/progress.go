package driver

import "time"

// Stage describes a compilation phase of one input file.
type Stage string

const (
	// StageRead is reading the file from disk.
	StageRead Stage = "read"
	// StageParse is lexing and parsing.
	StageParse Stage = "parse"
	// StageCheck covers the class registry and type checking.
	StageCheck Stage = "check"
	// StageLower is AST to IR3 lowering and validation.
	StageLower Stage = "lower"
	// StageEmit renders the IR3 output.
	StageEmit Stage = "emit"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is inside a stage.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished successfully.
	StatusDone Status = "done"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole batch when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(Event)

func (f ProgressFunc) OnEvent(evt Event) { f(evt) }

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
