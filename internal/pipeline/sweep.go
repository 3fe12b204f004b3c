package pipeline

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
)

// SweepPoint is the outcome of one coefficient value in a sweep.
type SweepPoint struct {
	Value     float64           `json:"value"`
	Totals    model.Totals      `json:"totals"`
	Month12   model.MonthRecord `json:"month_12"`
	BreakEven int               `json:"break_even"`
}

// ProgressFunc is called during a sweep to report progress.
// current is the number of points evaluated so far, total is the total count.
type ProgressFunc func(current, total int)

// SweepValues returns every step of a field's range from Min to Max.
func SweepValues(f model.ParamField) []float64 {
	if f.Step <= 0 || f.Max < f.Min {
		return []float64{f.Min}
	}
	n := int(math.Floor((f.Max-f.Min)/f.Step+1e-9)) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Round((f.Min+float64(i)*f.Step)*1e6) / 1e6
	}
	return values
}

// Sweep evaluates base with one coefficient replaced by each value.
// Points are computed by a bounded worker pool and returned in input order.
func Sweep(e *engine.Engine, base model.Params, key string, values []float64, progressFn ProgressFunc) ([]SweepPoint, error) {
	if _, ok := base.Value(key); !ok {
		return nil, fmt.Errorf("unknown parameter %q", key)
	}
	if len(values) == 0 {
		return nil, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(values) {
		numWorkers = len(values)
	}

	work := make(chan int, len(values))
	points := make([]SweepPoint, len(values))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range values {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				p := base
				p.Set(key, values[idx])
				months := e.Compute(p)
				points[idx] = SweepPoint{
					Value:     values[idx],
					Totals:    Aggregate(months),
					Month12:   months[len(months)-1],
					BreakEven: BreakEvenMonth(months),
				}
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(values))
				}
			}
		}()
	}

	wg.Wait()
	return points, nil
}
