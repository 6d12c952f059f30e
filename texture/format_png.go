//go:build !kiln_no_png

package texture

import (
	"bytes"
	"fmt"
	"image/png"
)

func init() {
	registerDecoder(FormatPng, decodePng)
}

func decodePng(data []byte, opts decodeOptions) (*Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	return fromStdImage(img, FormatPng, opts), nil
}
