// Package schema derives an OpenAPI 3 schema for the records a form
// produces and loads lead documents (pre-filled records in JSON or YAML)
// for non-interactive submission.
package schema
