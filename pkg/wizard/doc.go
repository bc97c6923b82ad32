// Package wizard drives a multi-step form: it validates the current step
// before moving forward, lets the user step back without validation and, on
// the final step, submits the record to a store with exactly one insert.
//
// A Controller is safe for concurrent use. While an insert is in flight the
// controller rejects further submissions, updates and step changes, and
// after a successful submission the session is closed.
package wizard
