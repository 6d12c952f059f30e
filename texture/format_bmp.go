//go:build !kiln_no_bmp

package texture

import (
	"bytes"
	"fmt"

	"golang.org/x/image/bmp"
)

func init() {
	registerDecoder(FormatBmp, decodeBmp)
}

func decodeBmp(data []byte, opts decodeOptions) (*Image, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode bmp: %w", err)
	}

	return fromStdImage(img, FormatBmp, opts), nil
}
