// Package batch runs the slice pipeline over many slices in parallel and
// returns the results in a reproducible order.
package batch

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"shortcardiac/internal/logger"
	"shortcardiac/internal/models"
	"shortcardiac/pkg/pipeline"
)

const component = logger.ComponentBatch

// Params holds the batch parameters.
type Params struct {
	// NumCores specifies how many slices are processed concurrently.
	NumCores int
}

// Processor distributes slices over a fixed number of workers. Each worker
// runs one full pipeline per slice; nothing is shared between slices except
// the read-only pipeline.
type Processor struct {
	params   *Params
	pipeline *pipeline.Pipeline
	log      logger.Logger

	// runID tags every log line of one Process call
	runID string
}

// NewProcessor creates a new processor.
//
// Parameters:
//   - params: worker count
//   - p: the pipeline every slice is run through
//   - log: destination for progress and per-slice failures
//
// Returns:
//   - A Processor ready to run batches
func NewProcessor(params *Params, p *pipeline.Pipeline, log logger.Logger) *Processor {
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{params: params, pipeline: p, log: log}
}

// RunID is the identifier of the most recent Process call.
func (b *Processor) RunID() string {
	return b.runID
}

// Process runs every input and returns one result per input, sorted
// naturally by slice ID. A failing slice never aborts the batch.
func (b *Processor) Process(inputs []models.SliceInput) ([]pipeline.Result, error) {
	b.runID = uuid.New().String()
	log := logger.ForRun(b.log, b.runID)

	numCores := b.params.NumCores
	if numCores < 1 {
		numCores = 1
	}
	if numCores > len(inputs) {
		numCores = len(inputs)
	}

	log.Info(component, "processing slices", map[string]interface{}{
		"slices": len(inputs),
		"cores":  numCores,
	})

	jobs := make(chan models.SliceInput)
	resultChan := make(chan pipeline.Result)

	var wg sync.WaitGroup
	for c := 0; c < numCores; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range jobs {
				log.Debug(component, "slice started", map[string]interface{}{
					logger.FieldSlice: in.ID,
					"structures":      in.Contours.Len(),
				})
				resultChan <- b.pipeline.Run(in)
			}
		}()
	}

	go func() {
		for _, in := range inputs {
			jobs <- in
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]pipeline.Result, 0, len(inputs))
	for res := range resultChan {
		results = append(results, res)

		if !res.Calculable {
			log.Warning(component, "slice not calculable", map[string]interface{}{
				logger.FieldSlice: res.ID,
				"reason":          string(res.Reason),
				"error":           fmt.Sprint(res.Err),
			})
		}
		log.Debug(component, "slice done", map[string]interface{}{
			logger.FieldSlice: res.ID,
			"progress":        fmt.Sprintf("%.1f%%", float64(len(results))/float64(len(inputs))*100),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return naturalLess(results[i].ID, results[j].ID)
	})
	return results, nil
}
