package kiln

// App is the composition root of an engine host. Plugins add resources and
// asset loaders to the app before it is handed to a runner.
type App struct {
	world *World
}

func (a *App) World() *World {
	if a.world == nil {
		a.world = NewWorld()
	}

	return a.world
}

func (a *App) AddPlugin(plugin Plugin) {
	plugin.ApplyTo(a)
}

func (a *App) InsertResource(res any) {
	a.World().InsertResource(res)
}

type Plugin interface {
	ApplyTo(app *App)
}

type PluginFunc func(app *App)

func (plugin PluginFunc) ApplyTo(app *App) {
	plugin(app)
}
