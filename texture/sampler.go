package texture

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// FilterMode selects how a texture is filtered when sampled.
type FilterMode uint8

const (
	// FilterDefault defers to the engine wide default filter.
	FilterDefault FilterMode = iota
	FilterNearest
	FilterLinear
)

func (m FilterMode) String() string {
	switch m {
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	default:
		return "default"
	}
}

func (m FilterMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *FilterMode) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	switch name {
	case "default":
		*m = FilterDefault
	case "nearest":
		*m = FilterNearest
	case "linear":
		*m = FilterLinear
	default:
		return fmt.Errorf("unknown filter mode %q", name)
	}

	return nil
}

// AddressMode selects how texture coordinates outside [0, 1] are handled.
type AddressMode uint8

const (
	AddressClampToEdge AddressMode = iota
	AddressRepeat
	AddressMirrorRepeat
)

func (m AddressMode) String() string {
	switch m {
	case AddressRepeat:
		return "repeat"
	case AddressMirrorRepeat:
		return "mirror-repeat"
	default:
		return "clamp-to-edge"
	}
}

func (m AddressMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *AddressMode) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	switch name {
	case "clamp-to-edge":
		*m = AddressClampToEdge
	case "repeat":
		*m = AddressRepeat
	case "mirror-repeat":
		*m = AddressMirrorRepeat
	default:
		return fmt.Errorf("unknown address mode %q", name)
	}

	return nil
}

// Sampler is the sampling configuration attached to an image. The zero value
// is the engine default sampler.
type Sampler struct {
	Filter FilterMode  `yaml:"filter"`
	Wrap   AddressMode `yaml:"wrap"`
}

var DefaultSampler = Sampler{}

// EbitenFilter maps the sampler to an ebiten draw filter, substituting the
// given engine default for FilterDefault.
func (s Sampler) EbitenFilter(engineDefault ebiten.Filter) ebiten.Filter {
	switch s.Filter {
	case FilterNearest:
		return ebiten.FilterNearest
	case FilterLinear:
		return ebiten.FilterLinear
	default:
		return engineDefault
	}
}
