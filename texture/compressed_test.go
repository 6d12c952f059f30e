package texture

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/require"
)

func TestCompressedFormatsFromFeatures(t *testing.T) {
	require.Equal(t, CompressedNone, CompressedFormatsFromFeatures(nil))

	require.Equal(t, CompressedBC, CompressedFormatsFromFeatures([]wgpu.FeatureName{
		wgpu.FeatureNameTextureCompressionBC,
		wgpu.FeatureNameDepthClipControl,
	}))

	require.Equal(t, CompressedAll, CompressedFormatsFromFeatures([]wgpu.FeatureName{
		wgpu.FeatureNameTextureCompressionASTC,
		wgpu.FeatureNameTextureCompressionBC,
		wgpu.FeatureNameTextureCompressionETC2,
	}))
}

func TestCompressedFormatsSupports(t *testing.T) {
	require.True(t, CompressedAll.Supports(CompressedBC))
	require.True(t, CompressedBC.Supports(CompressedNone))
	require.False(t, CompressedNone.Supports(CompressedBC))
	require.False(t, CompressedETC2.Supports(CompressedBC|CompressedETC2))
}

func TestBlockFormatProperties(t *testing.T) {
	require.Equal(t, CompressedBC, BC7RGBA.Family())
	require.Equal(t, CompressedETC2, EACR11.Family())
	require.Equal(t, CompressedASTCLdr, ASTC4x4.Family())

	require.Equal(t, 8, BC1RGBA.BytesPerBlock())
	require.Equal(t, 16, BC3RGBA.BytesPerBlock())

	// 10x6 texels are 3x2 blocks
	require.Equal(t, 3*2*16, BC7RGBA.levelByteSize(10, 6))
	require.Equal(t, 8, BC1RGBA.levelByteSize(1, 1))
}
