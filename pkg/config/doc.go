// Package config describes a multi-step form declaratively: its steps, the
// fields each step governs with their validation rules, presentation
// metadata, theme colours and user facing messages. Documents are JSON or
// YAML; Default returns the embedded fan filter unit quote form.
package config
