//go:build !kiln_no_jpeg

package texture

import (
	"bytes"
	"fmt"
	"image/jpeg"
)

func init() {
	registerDecoder(FormatJpeg, decodeJpeg)
}

func decodeJpeg(data []byte, opts decodeOptions) (*Image, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode jpeg: %w", err)
	}

	return fromStdImage(img, FormatJpeg, opts), nil
}
