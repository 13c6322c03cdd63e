package debug

// One-shot memory snapshot, logged after a command when --debug is set.
// Heap figures come from the runtime; RSS comes from gopsutil so the same
// line works on every platform.

import (
	"log/slog"
	"os"
	"runtime"
	"runtime/metrics"

	"github.com/shirou/gopsutil/v3/process"
)

// LogMemStats logs Go heap statistics and process RSS under msg. A failed
// RSS query is logged as a warning and reported as zero.
func LogMemStats(logger *slog.Logger, msg string) {
	if logger == nil {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)

	rss := uint64(0)
	if p, err := process.NewProcess(int32(os.Getpid())); err != nil {
		logger.Warn("memstats: process lookup failed", slog.String("err", err.Error()))
	} else if mi, err := p.MemoryInfo(); err != nil {
		logger.Warn("memstats: memory info failed", slog.String("err", err.Error()))
	} else {
		rss = mi.RSS
	}

	logger.Debug(msg,
		slog.Uint64("goroutines", samples[0].Value.Uint64()),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("heap_sys", ms.HeapSys),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
		slog.Uint64("rss", rss),
	)
}
