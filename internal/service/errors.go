package service

import "errors"

// Sentinel errors returned by the services. The HTTP layer maps these to
// status codes; everything else surfaces as an internal error with a masked
// message.
var (
	// ErrOrderNotFound is returned when an order id resolves to nothing.
	ErrOrderNotFound = errors.New("order not found")
	// ErrQuoteNotFound is returned when a quote id resolves to nothing.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrTaskNotFound is returned when a task id resolves to nothing.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidInput is returned for malformed or out-of-range request input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTransition is returned when a signoff is legal in form but not
	// in the task's current status.
	ErrInvalidTransition = errors.New("invalid transition")
)
