//go:build !kiln_no_pnm

package texture

import (
	"bytes"
	"fmt"

	"github.com/spakin/netpbm"
)

func init() {
	registerDecoder(FormatPnm, decodePnm)
}

func decodePnm(data []byte, opts decodeOptions) (*Image, error) {
	img, err := netpbm.Decode(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("decode pnm: %w", err)
	}

	return fromStdImage(img, FormatPnm, opts), nil
}
