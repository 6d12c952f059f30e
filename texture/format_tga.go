//go:build !kiln_no_tga

package texture

import (
	"bytes"
	"fmt"

	"github.com/ftrvxmtrx/tga"
)

func init() {
	registerDecoder(FormatTga, decodeTga)
}

func decodeTga(data []byte, opts decodeOptions) (*Image, error) {
	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode tga: %w", err)
	}

	return fromStdImage(img, FormatTga, opts), nil
}
