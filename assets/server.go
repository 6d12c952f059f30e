// Package assets implements the asset server: a file-system backed registry
// of asset loaders keyed by file extension, with an async promise cache per
// asset path.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Server loads assets from a file system through registered loaders.
//
// Loading is asynchronous: Load returns immediately with a promise that is
// fulfilled by a background goroutine. Loads for distinct paths are fully
// independent; the server itself is only mutated during plugin setup
// (RegisterLoader, RegisterExtensionHint), never during loads.
type Server struct {
	fs fs.FS

	loaders map[string]Loader
	hints   map[string]string

	generic *assetCache[any]
	bytes   *assetCache[[]byte]
}

func NewServer(fsys fs.FS, loaders ...Loader) Server {
	server := Server{
		fs:      fsys,
		loaders: make(map[string]Loader, 8),
		hints:   map[string]string{},
		generic: &assetCache[any]{},
		bytes:   &assetCache[[]byte]{},
	}

	for _, l := range loaders {
		server.RegisterLoader(l)
	}

	return server
}

// RegisterLoader registers the loader for all extensions it claims.
// Extensions are matched case insensitively and without a leading dot.
func (s *Server) RegisterLoader(l Loader) {
	for _, ext := range l.Extensions() {
		s.loaders[normalizeExt(ext)] = l
	}
}

// RegisterExtensionHint records an explanation for an extension no loader
// claims, e.g. naming the build feature that would enable it. The hint is
// included in the error of a load attempt for that extension.
func (s *Server) RegisterExtensionHint(ext, hint string) {
	s.hints[normalizeExt(ext)] = hint
}

// ExtensionHint returns the hint registered for the given extension.
func (s *Server) ExtensionHint(ext string) (string, bool) {
	hint, ok := s.hints[normalizeExt(ext)]
	return hint, ok
}

func (s *Server) Load(path string) AsyncAsset[any] {
	return s.LoadWithSettings(path, nil)
}

func (s *Server) LoadWithSettings(path string, settings Settings) AsyncAsset[any] {
	ext := extensionOf(path)

	loader, ok := s.loaders[ext]
	if !ok {
		err := fmt.Errorf("no asset loader registered for extension %q", ext)
		if hint, ok := s.hints[ext]; ok {
			err = fmt.Errorf("%w (hint: try %s)", err, hint)
		}

		return failedAsset[any]{err: err}
	}

	return s.generic.Get(path, func() (any, error) {
		fp, err := s.fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open asset %q: %w", path, err)
		}

		defer func() { _ = fp.Close() }()

		loadSettings := settings
		if loadSettings == nil {
			loadSettings, err = s.metaSettings(path, loader)
			if err != nil {
				return nil, err
			}
		}

		ctx := LoadContext{
			Path:     path,
			Settings: loadSettings,
		}

		asset, err := loader.Load(ctx, fp)
		if err != nil {
			return nil, fmt.Errorf("loading asset %q with loader %T: %w", path, loader, err)
		}

		return asset, nil
	})
}

// metaSettings reads loader settings from the sidecar "<path>.meta" file if
// one exists and the loader knows how to decode it.
func (s *Server) metaSettings(path string, loader Loader) (Settings, error) {
	decoder, ok := loader.(SettingsDecoder)
	if !ok {
		return nil, nil
	}

	data, err := fs.ReadFile(s.fs, path+".meta")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read asset meta %q: %w", path+".meta", err)
	}

	settings, err := decoder.DecodeSettings(data)
	if err != nil {
		return nil, fmt.Errorf("decode asset meta %q: %w", path+".meta", err)
	}

	return settings, nil
}

// Bytes loads the raw content of the file at the given path.
func (s *Server) Bytes(path string) AsyncAsset[[]byte] {
	return s.bytes.Get(path, func() ([]byte, error) {
		return fs.ReadFile(s.fs, path)
	})
}

// As adapts an untyped asset promise to a typed one.
func As[T any](asset AsyncAsset[any]) AsyncAsset[T] {
	return &typedAsyncAsset[T]{Asset: asset}
}

func (s *Server) StartCount() int {
	return int(s.bytes.Loading() + s.generic.Loading())
}

func (s *Server) FinishCount() int {
	return int(s.bytes.Finished() + s.generic.Finished())
}

func (s *Server) IsLoading() bool {
	return s.StartCount() > s.FinishCount()
}

func normalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}

func extensionOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || idx < strings.LastIndexByte(path, '/') {
		return ""
	}

	return normalizeExt(path[idx+1:])
}
