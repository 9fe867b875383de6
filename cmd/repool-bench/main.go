// Command repool-bench drives synthetic borrow/return workloads against a
// pool and reports throughput, pool statistics and process memory usage.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/repool/repool/pkg/config"
	"github.com/repool/repool/pkg/json"
	"github.com/repool/repool/pkg/logger"
	"github.com/repool/repool/pkg/metrics"
	"github.com/repool/repool/pkg/pool"
	stringpool "github.com/repool/repool/pkg/strings"
)

var version = "0.1.0"

// payload is the pooled container exercised by the item workload. It opts
// into auto-reset via Resetter.
type payload struct {
	ID   int64
	Tags []string
	Data map[string]int64
}

func (p *payload) Reset() {
	p.ID = 0
	p.Tags = p.Tags[:0]
	clear(p.Data)
}

func main() {
	root := &cobra.Command{
		Use:   "repool-bench",
		Short: "repool-bench - workload driver for the repool pooling library",
		Long: `repool-bench runs concurrent rent/return traffic against a typed object
pool and reports throughput, pool statistics, and process memory usage. It is
the inspection tool for tuning pooled workloads.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repool-bench v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	var configFile string
	var workers, sliceLength, bufferSize int
	var duration time.Duration
	var checks, dumpConfig bool
	var metricsAddr string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pool workload",
		Long: `Run concurrent rent/return traffic against a dedicated pool.

Example:
  repool-bench run --workers 8 --duration 30s --metrics-addr :9091`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workload.Workers = workers
			}
			if cmd.Flags().Changed("duration") {
				cfg.Workload.Duration = duration
			}
			if cmd.Flags().Changed("slice-length") {
				cfg.Workload.SliceLength = sliceLength
			}
			if cmd.Flags().Changed("buffer-size") {
				cfg.Workload.BufferSize = bufferSize
			}
			if cmd.Flags().Changed("checks") {
				cfg.Pool.Checks = checks
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Observability.MetricsAddr = metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if dumpConfig {
				out, err := cfg.Dump()
				if err != nil {
					return err
				}
				fmt.Print(string(out))
				return nil
			}
			return runBench(cfg)
		},
	}

	runCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to a YAML/JSON config file (optional)")
	runCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "Number of concurrent workers")
	runCmd.Flags().DurationVar(&duration, "duration", 10*time.Second, "Workload duration")
	runCmd.Flags().IntVar(&sliceLength, "slice-length", 64, "Exact length for slice traffic")
	runCmd.Flags().IntVar(&bufferSize, "buffer-size", 4096, "Request size for buffer traffic")
	runCmd.Flags().BoolVar(&checks, "checks", false, "Enable ownership checking on the exercised pool")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9091)")
	runCmd.Flags().BoolVar(&dumpConfig, "dump-config", false, "Print the effective configuration and exit")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// report is the JSON document printed after a run.
type report struct {
	Name       string     `json:"name"`
	Workers    int        `json:"workers"`
	Duration   string     `json:"duration"`
	Operations int64      `json:"operations"`
	OpsPerSec  float64    `json:"ops_per_sec"`
	Pool       pool.Stats `json:"pool"`
	Memory     memReport  `json:"memory"`
}

type memReport struct {
	RSSBytes   uint64 `json:"rss_bytes"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	NumGC      uint32 `json:"num_gc"`
}

func runBench(cfg *config.Config) error {
	if err := logger.Init(logger.Config{
		Level:    cfg.Observability.LogLevel,
		Encoding: cfg.Observability.LogEncoding,
	}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p := pool.New(
		pool.WithLogger(logger.Get()),
		pool.WithChecks(cfg.Pool.Checks),
	)
	defer p.Close()

	if addr := cfg.Observability.MetricsAddr; addr != "" {
		metrics.MustRegister(metrics.NewPoolCollector(cfg.Name, p))
		go func() {
			logger.Info("serving metrics", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, metrics.Handler()); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	ctx := logger.ContextWithPool(context.Background(), cfg.Name)
	ctx = logger.ContextWithComponent(ctx, "bench")
	logger.WithContext(ctx).Info("starting workload",
		zap.Int("workers", cfg.Workload.Workers),
		zap.Duration("duration", cfg.Workload.Duration),
		zap.Bool("checks", cfg.Pool.Checks),
	)

	timer := metrics.NewTimer(cfg.Name)
	ops := runWorkload(ctx, p, cfg)
	elapsed := timer.Stop()

	rep := report{
		Name:       cfg.Name,
		Workers:    cfg.Workload.Workers,
		Duration:   elapsed.String(),
		Operations: ops,
		OpsPerSec:  float64(ops) / elapsed.Seconds(),
		Pool:       p.Stats(),
		Memory:     collectMemory(),
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// runWorkload hammers the pool from cfg.Workload.Workers goroutines until
// the configured duration elapses, returning the total operation count.
func runWorkload(ctx context.Context, p *pool.Pool, cfg *config.Config) int64 {
	buffers := pool.NewBufferPool(p)
	deadline := time.Now().Add(cfg.Workload.Duration)

	var ops atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workload.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			tag := stringpool.Intern(stringpool.Sprintf("worker-%d", worker))
			log := logger.WithContext(logger.ContextWithWorkload(ctx, tag))
			var n int64
			for time.Now().Before(deadline) {
				r := pool.Rent[payload](p)
				v := r.Value()
				v.ID = n
				v.Tags = append(v.Tags, tag)
				if v.Data == nil {
					v.Data = make(map[string]int64, 4)
				}
				v.Data[tag] = n
				r.Release()

				rs := pool.RentSlice[int64](p, cfg.Workload.SliceLength, false)
				rs.Slice()[0] = n
				rs.Release()

				buf := buffers.Get(cfg.Workload.BufferSize)
				buf[0] = byte(n)
				buffers.Put(buf)

				n += 3
			}
			ops.Add(n)
			log.Debug("worker finished", zap.Int64("operations", n))
		}(w)
	}
	wg.Wait()
	return ops.Load()
}

func collectMemory() memReport {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	rep := memReport{
		HeapAlloc:  ms.HeapAlloc,
		TotalAlloc: ms.TotalAlloc,
		NumGC:      ms.NumGC,
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil {
			rep.RSSBytes = mi.RSS
		}
	}
	return rep
}
