// Package benchmark measures per-call latency and throughput of the rc5
// key schedule and block path for a given parameterization.
package benchmark

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"rc5-go/pkg/log"
	"rc5-go/pkg/rc5"
)

// Phase selects what is timed.
type Phase int

const (
	PhaseKeySchedule Phase = iota // rc5.New: validation plus key expansion
	PhaseEncrypt                  // Session.Encrypt over Size bytes
	PhaseDecrypt                  // Session.Decrypt over Size bytes
)

func (p Phase) String() string {
	switch p {
	case PhaseKeySchedule:
		return "Key Schedule"
	case PhaseEncrypt:
		return "Encrypt"
	case PhaseDecrypt:
		return "Decrypt"
	default:
		return "Unknown"
	}
}

// Options configures a run. Size is rounded down to whole blocks.
type Options struct {
	Params     rc5.Params
	Iterations int
	Size       int
}

func DefaultOptions() *Options {
	return &Options{
		Params:     rc5.DefaultParams(),
		Iterations: 1000,
		Size:       4096,
	}
}

// Results holds latency statistics for one phase.
type Results struct {
	Phase      Phase
	Params     rc5.Params
	Size       int
	Iterations int
	Min        time.Duration
	Max        time.Duration
	Avg        time.Duration
	Median     time.Duration
	P95        time.Duration
	P99        time.Duration
	Total      time.Duration
}

// Throughput is bytes processed per second, zero for the key schedule.
func (r *Results) Throughput() float64 {
	if r.Phase == PhaseKeySchedule || r.Total <= 0 {
		return 0
	}
	return float64(r.Size) * float64(r.Iterations) / r.Total.Seconds()
}

// Run times one phase.
func Run(opts *Options, phase Phase) (*Results, error) {
	if opts.Iterations <= 0 {
		return nil, fmt.Errorf("benchmark: iterations must be positive, got %d", opts.Iterations)
	}
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}
	bs := opts.Params.BlockSize()
	size := opts.Size / bs * bs

	key := make([]byte, opts.Params.KeySize)
	data := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if _, err := rand.Read(data); err != nil {
		return nil, err
	}
	s, err := rc5.New(opts.Params, key)
	if err != nil {
		return nil, err
	}

	var op func() error
	switch phase {
	case PhaseKeySchedule:
		op = func() error { _, err := rc5.New(opts.Params, key); return err }
	case PhaseEncrypt:
		op = func() error { _, err := s.Encrypt(data); return err }
	case PhaseDecrypt:
		op = func() error { _, err := s.Decrypt(data); return err }
	default:
		return nil, fmt.Errorf("benchmark: unknown phase %d", phase)
	}

	latencies := make([]time.Duration, 0, opts.Iterations)
	start := time.Now()
	for i := 0; i < opts.Iterations; i++ {
		t0 := time.Now()
		if err := op(); err != nil {
			return nil, fmt.Errorf("benchmark: %s: %w", phase, err)
		}
		latencies = append(latencies, time.Since(t0))
	}
	total := time.Since(start)

	r := calculateStats(latencies, total)
	r.Phase = phase
	r.Params = opts.Params
	r.Size = size
	if phase == PhaseKeySchedule {
		r.Size = 0
	}
	return r, nil
}

// RunAll times every phase and logs failures instead of stopping.
func RunAll(opts *Options) []*Results {
	var results []*Results
	for _, phase := range []Phase{PhaseKeySchedule, PhaseEncrypt, PhaseDecrypt} {
		r, err := Run(opts, phase)
		if err != nil {
			log.Error().Err(err).Str("phase", phase.String()).Msg("benchmark failed")
			continue
		}
		results = append(results, r)
	}
	return results
}

func calculateStats(latencies []time.Duration, total time.Duration) *Results {
	r := &Results{Iterations: len(latencies), Total: total}
	if len(latencies) == 0 {
		return r
	}
	slices.Sort(latencies)
	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	n := len(latencies)
	r.Min = latencies[0]
	r.Max = latencies[n-1]
	r.Avg = sum / time.Duration(n)
	r.Median = latencies[n/2]
	r.P95 = latencies[n*95/100]
	r.P99 = latencies[n*99/100]
	return r
}

// PrintResults writes a human readable report.
func PrintResults(w io.Writer, r *Results) {
	fmt.Fprintf(w, "=== %s: %s ===\n", r.Params, r.Phase)
	if r.Size > 0 {
		fmt.Fprintf(w, "Buffer Size: %d bytes\n", r.Size)
	}
	fmt.Fprintf(w, "Iterations: %d\n", r.Iterations)
	fmt.Fprintf(w, "Total Time: %v\n", r.Total)
	fmt.Fprintf(w, "Min: %v  Avg: %v  Median: %v\n", r.Min, r.Avg, r.Median)
	fmt.Fprintf(w, "P95: %v  P99: %v  Max: %v\n", r.P95, r.P99, r.Max)
	if tp := r.Throughput(); tp > 0 {
		fmt.Fprintf(w, "Throughput: %.2f MiB/s\n", tp/(1<<20))
	}
}

// SaveResultsToFile writes results as CSV, durations in nanoseconds.
func SaveResultsToFile(results []*Results, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintln(f, "Params,Phase,Size,Iterations,Min,Avg,Median,P95,P99,Max,Total")
	for _, r := range results {
		fmt.Fprintf(f, "%s,%s,%d,%d,%d,%d,%d,%d,%d,%d,%d\n",
			r.Params, r.Phase, r.Size, r.Iterations,
			r.Min.Nanoseconds(), r.Avg.Nanoseconds(), r.Median.Nanoseconds(),
			r.P95.Nanoseconds(), r.P99.Nanoseconds(), r.Max.Nanoseconds(), r.Total.Nanoseconds())
	}
	return f.Close()
}
