package kitchen

import "time"

// Recorder receives measurements from a kitchen session.
type Recorder interface {
	// RecordOrder records an order leaving the loop for this pass, fulfilled or deferred.
	RecordOrder(status OrderStatus)

	// RecordStationAttempt records one station attempt and its outcome narration kind.
	RecordStationAttempt(station string, outcome NarrationKind)

	// RecordWithdrawal records a backup withdrawal attempt.
	RecordWithdrawal(ingredient string, qty int, err error)

	// RecordDrain records a completed fulfillment loop.
	RecordDrain(outcome DrainOutcome, duration time.Duration)

	// SetQueueDepth reports the current number of queued orders.
	SetQueueDepth(depth int)
}

type nopRecorder struct{}

func (nopRecorder) RecordOrder(OrderStatus)                    {}
func (nopRecorder) RecordStationAttempt(string, NarrationKind) {}
func (nopRecorder) RecordWithdrawal(string, int, error)        {}
func (nopRecorder) RecordDrain(DrainOutcome, time.Duration)    {}
func (nopRecorder) SetQueueDepth(int)                          {}
