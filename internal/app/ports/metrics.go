package ports

// ActionMetrics counts how dispatched actions end up. Applied and no-op
// outcomes are keyed by action type.
type ActionMetrics interface {
	RecordApplied(action string)
	RecordNoop(action string)
	RecordRejected()
	RecordPersistFailure()
}
