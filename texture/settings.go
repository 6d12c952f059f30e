package texture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kiln-engine/kiln/assets"
)

// FormatSetting selects how the image loader determines the container
// format: from the file extension (the default) or from an explicit format
// that overrides the extension.
type FormatSetting struct {
	format ImageFormat
}

// FromExtension resolves the format from the asset path's extension.
func FromExtension() FormatSetting {
	return FormatSetting{}
}

// ExplicitFormat forces the given container format, ignoring the extension.
func ExplicitFormat(format ImageFormat) FormatSetting {
	return FormatSetting{format: format}
}

func (s FormatSetting) imageType(ext string) ImageType {
	if s.format != FormatUnknown {
		return FormatType(s.format)
	}

	return ExtensionType(ext)
}

const fromExtensionName = "from_extension"

func (s FormatSetting) MarshalYAML() (any, error) {
	if s.format == FormatUnknown {
		return fromExtensionName, nil
	}

	return s.format.String(), nil
}

func (s *FormatSetting) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	if name == fromExtensionName {
		*s = FormatSetting{}
		return nil
	}

	format, ok := FormatFromName(name)
	if !ok {
		return fmt.Errorf("unknown image format %q", name)
	}

	*s = FormatSetting{format: format}
	return nil
}

// LoaderSettings is the per-load configuration of the image loader.
type LoaderSettings struct {
	Format    FormatSetting   `yaml:"format"`
	SRGB      bool            `yaml:"srgb"`
	Sampler   Sampler         `yaml:"sampler"`
	Retention RetentionPolicy `yaml:"retention"`
}

func (LoaderSettings) IsLoadSettings() {}

// DefaultLoaderSettings are the settings used when a load request carries
// none: infer the format from the extension, sRGB color space, engine
// default sampler, keep CPU pixels after upload.
func DefaultLoaderSettings() LoaderSettings {
	return LoaderSettings{
		Format:    FromExtension(),
		SRGB:      true,
		Sampler:   DefaultSampler,
		Retention: RetentionKeep,
	}
}

// DecodeSettings parses LoaderSettings from sidecar meta file contents.
// Omitted fields keep their default values.
func (l *ImageLoader) DecodeSettings(data []byte) (assets.Settings, error) {
	settings := DefaultLoaderSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return settings, nil
}
