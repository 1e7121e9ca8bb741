package usecase

import (
	"context"
	"sync"
	"time"
)

type PipelineEventType string

const (
	PipelineLoading   PipelineEventType = "loading"
	PipelineDirectory PipelineEventType = "directory"
)

type PipelineEvent struct {
	Type PipelineEventType
	Seq  uint64
	View *DirectoryView
}

type DirectoryLoadFunc func(ctx context.Context, q DirectoryQuery) DirectoryView

// DirectoryPipeline turns a stream of filter changes into directory loads.
// Submissions within delay collapse into one load, a new submission cancels the
// load in flight, and only the latest submission's view is emitted.
type DirectoryPipeline struct {
	parent context.Context
	delay  time.Duration
	load   DirectoryLoadFunc
	emit   func(PipelineEvent)

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

func NewDirectoryPipeline(parent context.Context, delay time.Duration, load DirectoryLoadFunc, emit func(PipelineEvent)) *DirectoryPipeline {
	if parent == nil {
		parent = context.Background()
	}
	return &DirectoryPipeline{parent: parent, delay: delay, load: load, emit: emit}
}

func (p *DirectoryPipeline) Submit(q DirectoryQuery) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	p.seq++
	seq := p.seq
	if p.timer != nil {
		p.timer.Stop()
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.timer = time.AfterFunc(p.delay, func() { p.run(seq, q) })
}

func (p *DirectoryPipeline) run(seq uint64, q DirectoryQuery) {
	p.mu.Lock()
	if p.closed || seq != p.seq {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(p.parent)
	p.cancel = cancel
	p.mu.Unlock()
	defer cancel()

	p.emit(PipelineEvent{Type: PipelineLoading, Seq: seq})
	view := p.load(ctx, q)

	p.mu.Lock()
	current := !p.closed && seq == p.seq && ctx.Err() == nil
	p.mu.Unlock()
	if !current {
		return
	}
	p.emit(PipelineEvent{Type: PipelineDirectory, Seq: seq, View: &view})
}

// Close stops pending and in-flight loads; later submissions are ignored.
func (p *DirectoryPipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
