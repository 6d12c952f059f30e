package texture

import (
	"fmt"

	"github.com/kiln-engine/kiln"
	"github.com/kiln-engine/kiln/assets"
	"github.com/kiln-engine/kiln/render"
)

var _ assets.Loader = (*ImageLoader)(nil)
var _ assets.SettingsDecoder = (*ImageLoader)(nil)

// NewImageLoaderFromWorld constructs the image loader from the resources of
// the world. Without a render.Device resource the loader accepts no
// block-compressed payloads. If an asset server is present, a hint is
// registered for every extension whose decoder is not compiled in.
func NewImageLoaderFromWorld(world *kiln.World) *ImageLoader {
	supported := CompressedNone
	if device, ok := kiln.ResourceOf[render.Device](world); ok {
		supported = CompressedFormatsFromFeatures(device.Features())
	}

	if server, ok := kiln.ResourceOf[assets.Server](world); ok {
		for _, disabled := range DisabledExtensions() {
			server.RegisterExtensionHint(disabled.Extension,
				fmt.Sprintf("recompiling with the %q image feature enabled", disabled.Feature))
		}
	}

	return NewImageLoader(supported)
}

// Plugin registers the image loader with the app's asset server.
var Plugin = kiln.PluginFunc(func(app *kiln.App) {
	loader := NewImageLoaderFromWorld(app.World())

	if server, ok := kiln.ResourceOf[assets.Server](app.World()); ok {
		server.RegisterLoader(loader)
	}
})
