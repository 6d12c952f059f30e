// Package render exposes the render device resource. The device is optional:
// headless hosts (asset preprocessing, tests) simply never insert it.
package render

import "github.com/cogentcore/webgpu/wgpu"

// Device describes the active graphics device. Texture loaders consult its
// feature set to decide which GPU-compressed texture payloads may be kept
// as-is instead of being rejected.
type Device struct {
	features map[wgpu.FeatureName]struct{}
}

// NewDevice builds a Device resource from the feature list reported by the
// wgpu adapter.
func NewDevice(features ...wgpu.FeatureName) Device {
	set := make(map[wgpu.FeatureName]struct{}, len(features))
	for _, f := range features {
		set[f] = struct{}{}
	}

	return Device{features: set}
}

func (d Device) HasFeature(feature wgpu.FeatureName) bool {
	_, ok := d.features[feature]
	return ok
}

// Features returns the device feature set as a slice, in no particular order.
func (d Device) Features() []wgpu.FeatureName {
	features := make([]wgpu.FeatureName, 0, len(d.features))
	for f := range d.features {
		features = append(features, f)
	}

	return features
}
