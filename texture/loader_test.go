package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiln-engine/kiln/assets"
)

func encodePng(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 50), G: uint8(y * 50), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestExtensionsDefaultBuild(t *testing.T) {
	loader := NewImageLoader(CompressedNone)

	// basis has no decoder, everything else is enabled by default
	require.Equal(t, []string{
		"bmp", "png", "dds", "tga", "jpg", "jpeg", "ktx2", "webp",
		"pam", "pbm", "pgm", "ppm",
	}, loader.Extensions())
}

func TestLoadPngWithDefaults(t *testing.T) {
	loader := NewImageLoader(CompressedNone)

	data := encodePng(t, 7, 5)

	asset, err := loader.Load(assets.LoadContext{Path: "textures/tile.png"}, bytes.NewReader(data))
	require.NoError(t, err)

	img, ok := asset.(*Image)
	require.True(t, ok)

	require.Equal(t, 7, img.Width())
	require.Equal(t, 5, img.Height())
	require.Equal(t, FormatPng, img.Format())
	require.True(t, img.IsSRGB())
	require.Equal(t, RetentionKeep, img.Retention())
	require.False(t, img.IsCompressed())
	require.NotNil(t, img.Pixels())
}

func TestLoadCorruptPng(t *testing.T) {
	loader := NewImageLoader(CompressedNone)

	data := encodePng(t, 8, 8)
	corrupt := data[:len(data)/2]

	_, err := loader.Load(assets.LoadContext{Path: "textures/tile.png"}, bytes.NewReader(corrupt))
	require.Error(t, err)

	var fileErr *FileTextureError
	require.ErrorAs(t, err, &fileErr)
	require.Equal(t, "textures/tile.png", fileErr.Path)
	require.Contains(t, err.Error(), "textures/tile.png")
}

func TestExplicitFormatOverridesExtension(t *testing.T) {
	loader := NewImageLoader(CompressedNone)

	data := encodePng(t, 4, 4)

	// extension says jpeg, settings say png; the settings win
	settings := DefaultLoaderSettings()
	settings.Format = ExplicitFormat(FormatPng)

	asset, err := loader.Load(assets.LoadContext{
		Path:     "textures/mislabeled.jpg",
		Settings: settings,
	}, bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, FormatPng, asset.(*Image).Format())

	// sanity check: without the override the jpeg decoder rejects the bytes
	_, err = loader.Load(assets.LoadContext{Path: "textures/mislabeled.jpg"}, bytes.NewReader(data))
	require.Error(t, err)
}

func TestLoadPathWithoutExtension(t *testing.T) {
	loader := NewImageLoader(CompressedNone)

	_, err := loader.Load(assets.LoadContext{Path: "textures/noext"}, bytes.NewReader(encodePng(t, 2, 2)))
	require.ErrorIs(t, err, ErrMissingExtension)

	var fileErr *FileTextureError
	require.ErrorAs(t, err, &fileErr)
	require.Equal(t, "textures/noext", fileErr.Path)
}

func TestLoadUnknownExtension(t *testing.T) {
	loader := NewImageLoader(CompressedNone)

	_, err := loader.Load(assets.LoadContext{Path: "textures/strange.xyz"}, bytes.NewReader(nil))

	var extErr *UnknownExtensionError
	require.ErrorAs(t, err, &extErr)
	require.Equal(t, "xyz", extErr.Extension)
}

func TestLoadReadError(t *testing.T) {
	loader := NewImageLoader(CompressedNone)

	readErr := errors.New("boom")

	_, err := loader.Load(assets.LoadContext{Path: "textures/tile.png"}, errReader{err: readErr})
	require.ErrorIs(t, err, readErr)

	// read failures are io errors, not texture errors
	var fileErr *FileTextureError
	require.False(t, errors.As(err, &fileErr))
}

func TestLoadRejectsForeignSettings(t *testing.T) {
	loader := NewImageLoader(CompressedNone)

	_, err := loader.Load(assets.LoadContext{
		Path:     "textures/tile.png",
		Settings: foreignSettings{},
	}, bytes.NewReader(nil))
	require.Error(t, err)
}

type errReader struct {
	err error
}

func (e errReader) Read([]byte) (int, error) {
	return 0, e.err
}

type foreignSettings struct{}

func (foreignSettings) IsLoadSettings() {}
