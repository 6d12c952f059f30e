//go:build !kiln_no_webp

package texture

import (
	"bytes"
	"fmt"

	"golang.org/x/image/webp"
)

func init() {
	registerDecoder(FormatWebP, decodeWebP)
}

func decodeWebP(data []byte, opts decodeOptions) (*Image, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode webp: %w", err)
	}

	return fromStdImage(img, FormatWebP, opts), nil
}
