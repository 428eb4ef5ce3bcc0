package domain

// OperationStatus lifecycle stage of a catalog load or a conversion.
type OperationStatus string

const (
	// StatusIdle nothing requested yet.
	StatusIdle OperationStatus = "idle"
	// StatusLoading request in flight.
	StatusLoading OperationStatus = "loading"
	// StatusSuccess last request succeeded.
	StatusSuccess OperationStatus = "success"
	// StatusError last request failed.
	StatusError OperationStatus = "error"
)

// String returns the string representation.
func (s OperationStatus) String() string {
	return string(s)
}

// OperationState state of one operation. Transitions return a new value;
// illegal transitions return the receiver unchanged.
type OperationState struct {
	Status OperationStatus
	Err    error
	// Seq sequence number of the request that produced this state.
	Seq uint64
}

// Begin moves to Loading for request seq. Allowed from any state.
func (s OperationState) Begin(seq uint64) OperationState {
	return OperationState{Status: StatusLoading, Seq: seq}
}

// Succeed completes request seq. Ignored unless Loading with the same seq.
func (s OperationState) Succeed(seq uint64) OperationState {
	if s.Status != StatusLoading || s.Seq != seq {
		return s
	}
	return OperationState{Status: StatusSuccess, Seq: seq}
}

// Fail completes request seq with err. Ignored unless Loading with the same seq.
func (s OperationState) Fail(seq uint64, err error) OperationState {
	if s.Status != StatusLoading || s.Seq != seq {
		return s
	}
	return OperationState{Status: StatusError, Seq: seq, Err: err}
}

// Loading reports whether a request is in flight.
func (s OperationState) Loading() bool {
	return s.Status == StatusLoading
}
