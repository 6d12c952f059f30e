package assets

import (
	"fmt"
	"log/slog"
	"path"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// AsyncAsset is a promise for an asset that is being loaded in the
// background.
type AsyncAsset[T any] interface {
	// Await blocks until the asset is available and panics on load failure.
	Await() T

	// TryAwait blocks until the asset is available or the load has failed.
	TryAwait() (T, error)

	// Poll returns the current state without blocking. The bool return
	// value indicates whether loading has finished.
	Poll() (T, error, bool)
}

type asyncAsset[T any] struct {
	value atomic.Pointer[T]
	error atomic.Pointer[error]
	done  <-chan struct{}
}

func loadAsync[T any](load func() (T, error)) *asyncAsset[T] {
	doneCh := make(chan struct{})
	asset := &asyncAsset[T]{done: doneCh}

	// spawn the go routine to load the actual asset
	go func() {
		defer close(doneCh)

		defer func() {
			// we got a panic, propagate to the error
			if p := recover(); p != nil {
				err := fmt.Errorf("loading asset panicked: %v", p)
				asset.error.Store(&err)
			}
		}()

		value, err := load()
		if err != nil {
			asset.error.Store(&err)
			return
		}

		asset.value.Store(&value)
	}()

	return asset
}

func (a *asyncAsset[T]) Poll() (T, error, bool) {
	var tZero T

	if value := a.value.Load(); value != nil {
		return *value, nil, true
	}

	if err := a.error.Load(); err != nil {
		return tZero, *err, true
	}

	return tZero, nil, false
}

func (a *asyncAsset[T]) Await() T {
	value, err := a.TryAwait()
	if err != nil {
		panic(fmt.Errorf("failed to load asset: %w", err))
	}

	return value
}

func (a *asyncAsset[T]) TryAwait() (T, error) {
	for {
		if value := a.value.Load(); value != nil {
			return *value, nil
		}

		if err := a.error.Load(); err != nil {
			var tZero T
			return tZero, *err
		}

		// wait for the channel to close
		<-a.done
	}
}

// failedAsset is an already-rejected promise, used when a load cannot even
// be started.
type failedAsset[T any] struct {
	err error
}

func (f failedAsset[T]) Await() T {
	panic(fmt.Errorf("failed to load asset: %w", f.err))
}

func (f failedAsset[T]) TryAwait() (T, error) {
	var tZero T
	return tZero, f.err
}

func (f failedAsset[T]) Poll() (T, error, bool) {
	var tZero T
	return tZero, f.err, true
}

type typedAsyncAsset[T any] struct {
	Asset AsyncAsset[any]
}

func (t *typedAsyncAsset[T]) Await() T {
	return t.Asset.Await().(T)
}

func (t *typedAsyncAsset[T]) TryAwait() (T, error) {
	value, err := t.Asset.TryAwait()
	if err != nil {
		var tZero T
		return tZero, err
	}

	return value.(T), nil
}

func (t *typedAsyncAsset[T]) Poll() (T, error, bool) {
	value, err, ok := t.Asset.Poll()
	if !ok || err != nil {
		var tZero T
		return tZero, err, ok
	}

	return value.(T), nil, true
}

type assetCache[T any] struct {
	mu       sync.Mutex
	values   map[string]*asyncAsset[T]
	loading  atomic.Int32
	finished atomic.Int32
}

func (a *assetCache[T]) Loading() int32 {
	return a.loading.Load()
}

func (a *assetCache[T]) Finished() int32 {
	return a.finished.Load()
}

func (a *assetCache[T]) Get(p string, load func() (T, error)) *asyncAsset[T] {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.values == nil {
		a.values = make(map[string]*asyncAsset[T], 64)
	}

	// cleanup path to improve cache hits
	p = path.Clean(p)

	// check cache first
	if cached, ok := a.values[p]; ok {
		return cached
	}

	a.loading.Add(1)

	slog.Debug("Start loading asset",
		slog.String("type", reflect.TypeFor[T]().String()),
		slog.String("path", p))

	startTime := time.Now()

	asset := loadAsync(func() (value T, err error) {
		defer a.finished.Add(1)
		defer func() {
			if err != nil {
				slog.Warn("Failed to load asset",
					slog.String("type", reflect.TypeFor[T]().String()),
					slog.String("path", p),
					slog.Duration("duration", time.Since(startTime)),
					slog.String("error", err.Error()))
			} else {
				slog.Debug("Finish loading asset",
					slog.String("type", reflect.TypeFor[T]().String()),
					slog.String("path", p),
					slog.Duration("duration", time.Since(startTime)))
			}
		}()

		return load()
	})

	// and put the promise into the cache
	a.values[p] = asset

	return asset
}
