package texture

import (
	"testing"
	"testing/fstest"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/require"

	"github.com/kiln-engine/kiln"
	"github.com/kiln-engine/kiln/assets"
	"github.com/kiln-engine/kiln/render"
)

func TestFromWorldWithoutRenderDevice(t *testing.T) {
	loader := NewImageLoaderFromWorld(kiln.NewWorld())
	require.Equal(t, CompressedNone, loader.SupportedCompressedFormats())
}

func TestFromWorldWithRenderDevice(t *testing.T) {
	world := kiln.NewWorld()
	world.InsertResource(render.NewDevice(
		wgpu.FeatureNameTextureCompressionBC,
		wgpu.FeatureNameTextureCompressionETC2,
	))

	loader := NewImageLoaderFromWorld(world)
	require.Equal(t, CompressedBC|CompressedETC2, loader.SupportedCompressedFormats())
}

func TestFromWorldRegistersDisabledExtensionHints(t *testing.T) {
	world := kiln.NewWorld()
	world.InsertResource(assets.NewServer(fstest.MapFS{}))

	NewImageLoaderFromWorld(world)

	server, ok := kiln.ResourceOf[assets.Server](world)
	require.True(t, ok)

	hint, ok := server.ExtensionHint("basis")
	require.True(t, ok)
	require.Contains(t, hint, "basis-universal")

	// enabled extensions never get a hint
	for _, ext := range NewImageLoader(CompressedNone).Extensions() {
		_, ok := server.ExtensionHint(ext)
		require.False(t, ok, "unexpected hint for enabled extension %q", ext)
	}
}

func TestPluginRegistersLoader(t *testing.T) {
	var app kiln.App
	app.InsertResource(assets.NewServer(fstest.MapFS{
		"tile.png": &fstest.MapFile{Data: encodePng(t, 3, 3)},
	}))

	app.AddPlugin(Plugin)

	server, _ := kiln.ResourceOf[assets.Server](app.World())

	img, err := assets.As[*Image](server.Load("tile.png")).TryAwait()
	require.NoError(t, err)
	require.Equal(t, 3, img.Width())
	require.Equal(t, 3, img.Height())
}
