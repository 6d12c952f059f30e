package kiln

import "reflect"

// AnyPtr is a pointer to a resource value of unknown type.
type AnyPtr = any

// World holds the singleton resources shared by plugins: the asset server,
// the render device, configuration values and so on. Resources are keyed by
// their type; there is at most one resource value per type.
type World struct {
	resources map[reflect.Type]reflect.Value
}

func NewWorld() *World {
	return &World{
		resources: map[reflect.Type]reflect.Value{},
	}
}

// InsertResource inserts a new resource into the world.
// The resource should be provided as a non-pointer type.
//
// If the resource does not yet exist, a new value of the resources type will
// be allocated on the heap and the value provided will be copied into that
// memory location. If the world already contains a resource of the same type,
// the existing value is updated in place.
func (w *World) InsertResource(resource any) {
	resType := reflect.PointerTo(reflect.TypeOf(resource))

	if existing, ok := w.resources[resType]; ok {
		existing.Elem().Set(reflect.ValueOf(resource))
		return
	}

	ptr := reflect.New(resType.Elem())
	ptr.Elem().Set(reflect.ValueOf(resource))

	w.resources[ptr.Type()] = ptr
}

// RemoveResource removes a resource previously added with InsertResource.
func (w *World) RemoveResource(resourceType reflect.Type) {
	delete(w.resources, reflect.PointerTo(resourceType))
}

// Resource returns a pointer to the resource of the given reflect type.
// The type must be the non-pointer type of the resource, i.e. the type of the
// resource as it was passed to InsertResource.
func (w *World) Resource(ty reflect.Type) (AnyPtr, bool) {
	value, ok := w.resources[reflect.PointerTo(ty)]
	if !ok {
		return nil, false
	}

	return value.Interface(), true
}

// ResourceOf is a typed version of World.Resource.
func ResourceOf[T any](w *World) (*T, bool) {
	value, ok := w.Resource(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}

	return value.(*T), true
}
