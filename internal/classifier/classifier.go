// Package classifier wraps a pre-trained TensorFlow Lite image model that
// scores images for the presence of a rock bee colony.
package classifier

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	tflite "github.com/tphakala/go-tflite"
	"github.com/tphakala/go-tflite/delegates/xnnpack"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/conf"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/errors"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/logging"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/observability"
)

// Model contract: two output classes with fixed indices.
const (
	numClasses      = 2
	classNotRockBee = 0
	classRockBee    = 1
)

// Display labels and statuses for classification results.
const (
	LabelRockBee         = "Rock Bee"
	LabelPossibleRockBee = "Possible Rock Bee"
	LabelNotRockBee      = "Not Rock Bee"

	StatusConfirmed    = "confirmed"
	StatusManualReview = "manual_review"
	StatusNegative     = "negative"
)

// defaultLabels are the raw class names used when no labels file is configured.
// Index positions must match the training-time class indices.
var defaultLabels = []string{"not_rock_bee", "rock_bee"}

// Result is the outcome of scoring a single image.
type Result struct {
	Label      string  // display label for the winning class
	Confidence float64 // probability of the winning class
	Status     string  // confirmed, manual_review or negative
}

// Classifier represents the loaded model with its interpreter and configuration.
// The model is loaded once at construction and held read-only for the process
// lifetime; the interpreter itself is guarded by a mutex.
type Classifier struct {
	Settings    *conf.Settings
	Interpreter *tflite.Interpreter
	Labels      []string

	metrics *observability.Metrics
	mu      sync.Mutex
}

// New initializes a new Classifier instance with the given settings.
// A model load or initialization failure is fatal for the caller, the
// process cannot serve predictions without a model.
func New(settings *conf.Settings, metrics *observability.Metrics) (*Classifier, error) {
	c := &Classifier{
		Settings: settings,
		metrics:  metrics,
	}

	if err := c.loadLabels(); err != nil {
		return nil, errors.New(fmt.Errorf("classifier: failed to load labels: %w", err)).
			Component("classifier").
			Category(errors.CategoryLabelLoad).
			Context("labels_path", settings.Classifier.LabelsPath).
			Build()
	}

	if err := c.initializeModel(); err != nil {
		return nil, err
	}

	if c.metrics != nil {
		c.metrics.Classifier.SetModelLoaded(true)
	}

	return c, nil
}

// initializeModel loads and initializes the TensorFlow Lite model.
func (c *Classifier) initializeModel() error {
	start := time.Now()

	modelData, err := os.ReadFile(c.Settings.Classifier.ModelPath)
	if err != nil {
		return errors.New(fmt.Errorf("classifier: failed to read model file: %w", err)).
			Component("classifier").
			Category(errors.CategoryModelLoad).
			Context("model_path", c.Settings.Classifier.ModelPath).
			Timing("model-load", time.Since(start)).
			Build()
	}

	model := tflite.NewModel(modelData)
	if model == nil {
		return errors.Newf("classifier: cannot load TensorFlow Lite model").
			Component("classifier").
			Category(errors.CategoryModelInit).
			Context("model_path", c.Settings.Classifier.ModelPath).
			Context("model_size_mb", len(modelData)/1024/1024).
			Build()
	}

	// Determine the number of threads for the interpreter based on settings
	// and system capacity.
	threads := c.determineThreadCount(c.Settings.Classifier.Threads)

	// Configure interpreter options.
	options := tflite.NewInterpreterOptions()

	// Try to use XNNPACK delegate if enabled in settings
	log := logging.ForService("classifier")
	if c.Settings.Classifier.UseXNNPACK {
		delegate := xnnpack.New(xnnpack.DelegateOptions{NumThreads: int32(max(1, threads-1))})
		if delegate == nil {
			if log != nil {
				log.Warn("Failed to create XNNPACK delegate, falling back to default CPU")
			}
			options.SetNumThread(threads)
		} else {
			options.AddDelegate(delegate)
			options.SetNumThread(1)
		}
	} else {
		options.SetNumThread(threads)
	}

	options.SetErrorReporter(func(msg string, userData any) {
		logging.Error("TFLite error", "message", msg)
	}, nil)

	// Create and allocate the TensorFlow Lite interpreter.
	c.Interpreter = tflite.NewInterpreter(model, options)
	if c.Interpreter == nil {
		return errors.Newf("classifier: cannot create interpreter").
			Component("classifier").
			Category(errors.CategoryModelInit).
			Build()
	}
	if status := c.Interpreter.AllocateTensors(); status != tflite.OK {
		return errors.Newf("classifier: tensor allocation failed").
			Component("classifier").
			Category(errors.CategoryModelInit).
			Build()
	}

	// Model data is no longer needed, TFLite keeps its own internal copy.
	runtime.GC()

	if log != nil {
		log.Info("classifier model initialized",
			"model_path", c.Settings.Classifier.ModelPath,
			"threads", threads,
			"total_cpus", runtime.NumCPU(),
			"load_time_ms", time.Since(start).Milliseconds())
	}
	return nil
}

// loadLabels reads class labels from the configured labels file, or falls
// back to the built-in label set. Exactly two labels are required, their
// positions fix the class indices.
func (c *Classifier) loadLabels() error {
	if c.Settings.Classifier.LabelsPath == "" {
		c.Labels = defaultLabels
		return nil
	}

	file, err := os.Open(c.Settings.Classifier.LabelsPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	var labels []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			labels = append(labels, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(labels) != numClasses {
		return fmt.Errorf("expected %d labels, found %d", numClasses, len(labels))
	}

	c.Labels = labels
	return nil
}

// determineThreadCount returns the number of threads to use, capped to the
// number of CPUs. Zero means use all available CPUs.
func (c *Classifier) determineThreadCount(configured int) int {
	systemCPUs := runtime.NumCPU()
	if configured <= 0 || configured > systemCPUs {
		return systemCPUs
	}
	return configured
}

// Close releases the TensorFlow Lite interpreter.
func (c *Classifier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Interpreter != nil {
		c.Interpreter.Delete()
		c.Interpreter = nil
	}
	if c.metrics != nil {
		c.metrics.Classifier.SetModelLoaded(false)
	}
}
