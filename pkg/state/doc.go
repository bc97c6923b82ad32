// Package state holds the step pointer, the accumulated form data and the
// submission status of one wizard session. State is a plain value container:
// it does not validate and is not safe for concurrent use. The submission
// setters enforce the lifecycle Idle -> Submitting -> Succeeded | Failed,
// with Failed -> Submitting allowed for a manual retry.
package state
