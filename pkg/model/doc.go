// Package model defines the record shapes the wizard engine operates on. A
// concrete form is any JSON-serialisable struct; the engine only ever sees it
// through its flat Values view, keyed by the JSON field names that the form
// config references. Partial updates are shallow: Merge replaces whole values
// per key, so a set of choices is always written as the complete new set.
package model
