package domain

import "github.com/shopspring/decimal"

// SubmissionStatus classifies what happened to a submitted order.
type SubmissionStatus string

const (
	// SubmissionResting means the order was accepted and rests on the book
	// unmatched.
	SubmissionResting SubmissionStatus = "resting"

	// SubmissionPartialFill means some, but not all, of the requested
	// quantity executed immediately.
	SubmissionPartialFill SubmissionStatus = "partial_fill"

	// SubmissionFullFill means the entire requested quantity executed.
	SubmissionFullFill SubmissionStatus = "full_fill"

	// SubmissionRejected means the engine declined the order, e.g. for
	// insufficient balance. The order never reached the book.
	SubmissionRejected SubmissionStatus = "rejected"

	// SubmissionNetworkError means the request never completed; the order's
	// fate is unknown. Surfaced distinctly from rejection for that reason.
	SubmissionNetworkError SubmissionStatus = "network_error"
)

// SubmissionOutcome is the advisory classification of an order submission.
// The authoritative fill state remains the book snapshot received
// independently over the push feed.
type SubmissionOutcome struct {
	Status       SubmissionStatus
	Fills        []Trade // empty for resting, rejected, and network error
	TotalFilled  uint64
	AveragePrice decimal.Decimal // fill-weighted; zero when nothing filled
	Message      string          // display text for the user
}
