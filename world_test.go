package kiln

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type windowConfig struct {
	Title  string
	Width  int
	Height int
}

func TestInsertAndLookupResource(t *testing.T) {
	w := NewWorld()

	_, ok := ResourceOf[windowConfig](w)
	require.False(t, ok)

	w.InsertResource(windowConfig{Title: "kiln", Width: 800, Height: 600})

	config, ok := ResourceOf[windowConfig](w)
	require.True(t, ok)
	require.Equal(t, "kiln", config.Title)
}

func TestInsertResourceUpdatesInPlace(t *testing.T) {
	w := NewWorld()

	w.InsertResource(windowConfig{Width: 800})

	first, _ := ResourceOf[windowConfig](w)

	w.InsertResource(windowConfig{Width: 1024})

	second, _ := ResourceOf[windowConfig](w)
	require.Same(t, first, second)
	require.Equal(t, 1024, second.Width)
}

func TestRemoveResource(t *testing.T) {
	w := NewWorld()

	w.InsertResource(windowConfig{})
	w.RemoveResource(reflect.TypeFor[windowConfig]())

	_, ok := ResourceOf[windowConfig](w)
	require.False(t, ok)
}

func TestPluginApplies(t *testing.T) {
	var app App

	app.AddPlugin(PluginFunc(func(app *App) {
		app.InsertResource(windowConfig{Title: "from plugin"})
	}))

	config, ok := ResourceOf[windowConfig](app.World())
	require.True(t, ok)
	require.Equal(t, "from plugin", config.Title)
}
