package assets

import "io"

// Settings is a marker for per-load loader settings objects.
type Settings interface {
	IsLoadSettings()
}

// LoadContext carries per-load information into a Loader.
type LoadContext struct {
	// The path to the file we're currently loading
	Path string

	// A load specific settings object, nil to use the loader's defaults
	Settings Settings
}

// Loader decodes the raw bytes of an asset file into an in-memory asset
// value. Implementations are registered with a Server and selected by file
// extension.
type Loader interface {
	Load(ctx LoadContext, r io.Reader) (any, error)
	Extensions() []string
}

// SettingsDecoder is implemented by loaders that can parse their Settings
// from the contents of a sidecar "<path>.meta" file.
type SettingsDecoder interface {
	DecodeSettings(data []byte) (Settings, error)
}
