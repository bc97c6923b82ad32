// Package validation evaluates field values against declarative rule sets.
// Every function here is pure: ValidateField returns the first failing
// message for one value, ValidateStep collects the failing fields of one
// step, and NewStepValidator binds per-step rule sets into a lookup keyed by
// step number. An empty Errors value is the only signal that a step may be
// left or submitted.
package validation
