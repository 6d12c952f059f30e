package texture

import (
	"errors"
	"fmt"
)

// ErrMissingExtension is returned when an image type should be resolved from
// the file extension but the path has none.
var ErrMissingExtension = errors.New("image path has no file extension")

// ErrTranscodeUnsupported is returned for payloads that need a runtime
// transcoder (basis-universal, BasisLZ supercompression) to become
// GPU-sampleable.
var ErrTranscodeUnsupported = errors.New("texture payload requires a supercompression transcoder, which is not available")

// UnknownExtensionError is returned for file extensions no image format
// claims.
type UnknownExtensionError struct {
	Extension string
}

func (e *UnknownExtensionError) Error() string {
	return fmt.Sprintf("unknown image file extension %q", e.Extension)
}

// UnsupportedFormatError is returned when the container format is known but
// its decoder is not compiled into this binary.
type UnsupportedFormatError struct {
	Format ImageFormat
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("image format %q is not compiled into this binary", e.Format)
}

// UnsupportedCompressionError is returned when a container carries
// block-compressed data in a family the render device cannot sample.
type UnsupportedCompressionError struct {
	Format    BlockFormat
	Supported CompressedImageFormats
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("compressed texture format %s is not supported by the render device (supported families: %s)",
		e.Format, e.Supported)
}

// FileTextureError wraps a texture decode failure together with the path of
// the offending asset file.
type FileTextureError struct {
	Err  error
	Path string
}

func (e *FileTextureError) Error() string {
	return fmt.Sprintf("error reading image file %s: %v, this is an error in the kiln texture package", e.Path, e.Err)
}

func (e *FileTextureError) Unwrap() error {
	return e.Err
}
