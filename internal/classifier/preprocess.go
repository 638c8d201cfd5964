package classifier

import (
	"bytes"
	"fmt"
	"image"

	// Register decoders for the image formats accepted on upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Input resolution the model was trained with.
const imgSize = 224

// preprocess decodes an uploaded image and converts it into the flat NHWC
// float32 tensor the model expects: RGB, 224x224, normalized to [-1, 1]
// with MobileNetV2 preprocessing (v/127.5 - 1). The normalization must match
// training-time preprocessing exactly or accuracy silently degrades.
func preprocess(data []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	// Resize to the model input resolution, converting to RGBA on the way.
	scaled := image.NewRGBA(image.Rect(0, 0, imgSize, imgSize))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	input := make([]float32, imgSize*imgSize*3)
	i := 0
	for y := 0; y < imgSize; y++ {
		row := scaled.Pix[y*scaled.Stride : y*scaled.Stride+imgSize*4]
		for x := 0; x < imgSize; x++ {
			// RGBA pixel layout, alpha dropped.
			input[i] = float32(row[x*4])/127.5 - 1.0
			input[i+1] = float32(row[x*4+1])/127.5 - 1.0
			input[i+2] = float32(row[x*4+2])/127.5 - 1.0
			i += 3
		}
	}

	return input, nil
}
