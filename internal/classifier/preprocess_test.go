package classifier

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodePNG returns a PNG-encoded solid color image of the given size.
func encodePNG(t *testing.T, c color.Color, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPreprocessOutputShape(t *testing.T) {
	t.Parallel()

	input, err := preprocess(encodePNG(t, color.RGBA{R: 120, G: 80, B: 40, A: 255}, 640, 480))
	require.NoError(t, err)

	assert.Len(t, input, imgSize*imgSize*3)
	for _, v := range input {
		assert.GreaterOrEqual(t, v, float32(-1.0))
		assert.LessOrEqual(t, v, float32(1.0))
	}
}

// TestPreprocessNormalization verifies the MobileNetV2 value scaling on
// known solid colors.
func TestPreprocessNormalization(t *testing.T) {
	t.Parallel()

	white, err := preprocess(encodePNG(t, color.White, 32, 32))
	require.NoError(t, err)
	black, err := preprocess(encodePNG(t, color.Black, 32, 32))
	require.NoError(t, err)

	// 255/127.5-1 = 1.0 and 0/127.5-1 = -1.0
	assert.InDelta(t, 1.0, float64(white[0]), 0.01)
	assert.InDelta(t, -1.0, float64(black[0]), 0.01)
}

func TestPreprocessAcceptsJPEG(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	input, err := preprocess(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, input, imgSize*imgSize*3)
}

func TestPreprocessRejectsInvalidImage(t *testing.T) {
	t.Parallel()

	_, err := preprocess([]byte("this is not an image"))
	assert.Error(t, err)

	_, err = preprocess(nil)
	assert.Error(t, err)
}
