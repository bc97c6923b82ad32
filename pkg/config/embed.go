package config

import (
	"embed"
	"io/fs"
)

// DefaultFormPath is the embedded fan filter unit quote form.
const DefaultFormPath = "forms/ffu.yaml"

//go:embed forms/*.yaml
var embeddedForms embed.FS

// EmbeddedFS returns the bundled form documents.
func EmbeddedFS() fs.FS {
	return embeddedForms
}

// Default parses the embedded FFU quote form.
func Default() (*FormConfig, error) {
	return LoadFS(embeddedForms, DefaultFormPath)
}

// MustDefault is Default for package initialisation and tests.
func MustDefault() *FormConfig {
	cfg, err := Default()
	if err != nil {
		panic(err)
	}
	return cfg
}
