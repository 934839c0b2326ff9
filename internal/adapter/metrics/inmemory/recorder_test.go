package inmemory

import "testing"

func TestRecorder_Snapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordApplied("feed")
	r.RecordApplied("feed")
	r.RecordApplied("tick")
	r.RecordNoop("feed")
	r.RecordRejected()
	r.RecordPersistFailure()

	got := r.Snapshot()
	if got.ActionTotal != 5 || got.ActionApplied != 3 || got.ActionNoop != 1 || got.ActionRejected != 1 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.AppliedByAction["feed"] != 2 || got.NoopByAction["feed"] != 1 || got.PersistFailures != 1 {
		t.Fatalf("unexpected breakdown: %+v", got)
	}

	got.AppliedByAction["feed"] = 99
	if r.Snapshot().AppliedByAction["feed"] != 2 {
		t.Fatalf("snapshot must be detached")
	}
}
