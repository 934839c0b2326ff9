package inmemory

import "sync"

type Snapshot struct {
	ActionTotal     uint64            `json:"action_total"`
	ActionApplied   uint64            `json:"action_applied"`
	ActionNoop      uint64            `json:"action_noop"`
	ActionRejected  uint64            `json:"action_rejected"`
	PersistFailures uint64            `json:"persist_failures"`
	AppliedByAction map[string]uint64 `json:"applied_by_action"`
	NoopByAction    map[string]uint64 `json:"noop_by_action"`
}

type Recorder struct {
	mu              sync.Mutex
	applied         uint64
	noop            uint64
	rejected        uint64
	persistFailures uint64
	appliedBy       map[string]uint64
	noopBy          map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		appliedBy: map[string]uint64{},
		noopBy:    map[string]uint64{},
	}
}

func (r *Recorder) RecordApplied(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied++
	r.appliedBy[action]++
}

func (r *Recorder) RecordNoop(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.noop++
	r.noopBy[action]++
}

func (r *Recorder) RecordRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

func (r *Recorder) RecordPersistFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persistFailures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionApplied:   r.applied,
		ActionNoop:      r.noop,
		ActionRejected:  r.rejected,
		PersistFailures: r.persistFailures,
		ActionTotal:     r.applied + r.noop + r.rejected,
		AppliedByAction: make(map[string]uint64, len(r.appliedBy)),
		NoopByAction:    make(map[string]uint64, len(r.noopBy)),
	}
	for k, v := range r.appliedBy {
		out.AppliedByAction[k] = v
	}
	for k, v := range r.noopBy {
		out.NoopByAction[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
