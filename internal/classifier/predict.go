package classifier

import (
	"fmt"
	"time"

	tflite "github.com/tphakala/go-tflite"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/errors"
)

// Predict performs inference on the given image bytes using the TensorFlow
// Lite interpreter and applies the confidence-thresholded decision policy.
func (c *Classifier) Predict(imageData []byte) (Result, error) {
	input, err := preprocess(imageData)
	if err != nil {
		if c.metrics != nil {
			c.metrics.Classifier.RecordPredictionError(string(errors.CategoryImageDecode))
		}
		return Result{}, errors.New(err).
			Component("classifier").
			Category(errors.CategoryImageDecode).
			Build()
	}

	// Lock to prevent concurrent access to the interpreter, requests share
	// a single interpreter instance.
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Interpreter == nil {
		return Result{}, errors.Newf("classifier: interpreter is not initialized").
			Component("classifier").
			Category(errors.CategoryModelInit).
			Build()
	}

	start := time.Now()

	// Get the input tensor from the interpreter
	inputTensor := c.Interpreter.GetInputTensor(0)
	if inputTensor == nil {
		return Result{}, errors.Newf("classifier: cannot get input tensor").
			Component("classifier").
			Category(errors.CategoryImageAnalysis).
			Build()
	}

	// Preparing input tensor with the preprocessed image data
	copy(inputTensor.Float32s(), input)

	// Invoke the interpreter to perform inference
	if status := c.Interpreter.Invoke(); status != tflite.OK {
		if c.metrics != nil {
			c.metrics.Classifier.RecordPredictionError(string(errors.CategoryImageAnalysis))
		}
		return Result{}, errors.New(fmt.Errorf("classifier: tensor invoke failed: %v", status)).
			Component("classifier").
			Category(errors.CategoryImageAnalysis).
			Build()
	}

	// Read the per-class probabilities from the output tensor
	outputTensor := c.Interpreter.GetOutputTensor(0)
	if outputTensor == nil {
		return Result{}, errors.Newf("classifier: cannot get output tensor").
			Component("classifier").
			Category(errors.CategoryImageAnalysis).
			Build()
	}
	probabilities := make([]float32, numClasses)
	copy(probabilities, outputTensor.Float32s())

	result := decide(probabilities, c.Settings.Classifier.Threshold)

	if c.metrics != nil {
		c.metrics.Classifier.RecordPredictionDuration(time.Since(start).Seconds())
		c.metrics.Classifier.RecordDetection(result.Label, result.Status)
	}

	return result, nil
}

// decide applies the argmax decision policy: the rock bee class needs to
// reach the threshold for a confirmed detection, below it the image goes to
// manual review. The negative class wins at any probability, confidence then
// reports the negative class probability.
func decide(probabilities []float32, threshold float64) Result {
	bestIndex := 0
	for i, p := range probabilities {
		if p > probabilities[bestIndex] {
			bestIndex = i
		}
	}
	confidence := float64(probabilities[bestIndex])

	if bestIndex == classRockBee {
		if confidence >= threshold {
			return Result{Label: LabelRockBee, Confidence: confidence, Status: StatusConfirmed}
		}
		return Result{Label: LabelPossibleRockBee, Confidence: confidence, Status: StatusManualReview}
	}

	return Result{Label: LabelNotRockBee, Confidence: confidence, Status: StatusNegative}
}
