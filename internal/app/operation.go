package app

import "time"

// Operation tracks the CLI command an App was created for. Its name tags
// every process log line, and its outcome is logged when the App closes.
type Operation struct {
	Name       string
	Parameters string
	Status     string // "success" or "error"
	StartedAt  time.Time
}

// NewOperation creates an operation that starts out successful.
func NewOperation(name, parameters string, startedAt time.Time) *Operation {
	return &Operation{
		Name:       name,
		Parameters: parameters,
		Status:     "success",
		StartedAt:  startedAt,
	}
}

// Fail marks the operation as failed. A nil err leaves it unchanged.
func (op *Operation) Fail(err error) {
	if err != nil {
		op.Status = "error"
	}
}

// Succeeded reports whether no failure has been recorded.
func (op *Operation) Succeeded() bool {
	return op.Status == "success"
}
