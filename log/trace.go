package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "snapkeep-debug.log")

// initDebug initializes debug tracing if SNAPKEEP_DEBUG=1 is set.
func initDebug() {
	if os.Getenv("SNAPKEEP_DEBUG") != "1" {
		// Initialize DebugLog as a no-op logger to prevent nil pointer panics
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		if ErrorLog != nil {
			ErrorLog.Printf("could not open debug log file: %s", err)
		}
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Println("Debug mode enabled")
	DebugLog.Printf("Debug log: %s", debugLogFileName)
}

func closeDebug() {
	if debugLogFile != nil {
		_ = debugLogFile.Close()
		debugLogFile = nil
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// SaveTrace logs persistence-loop events.
func SaveTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[SAVE] "+format, v...)
	}
}

// SaveProfiler tracks auto-save cycle performance metrics.
type SaveProfiler struct {
	mu           sync.RWMutex
	phases       map[string]*PhaseMetrics
	cycleCount   int64
	totalTime    time.Duration
	lastCycleAt  time.Time
	cycleTimings []time.Duration // Rolling window of cycle times
}

// PhaseMetrics tracks metrics for a single save phase.
type PhaseMetrics struct {
	Name      string
	RunCount  int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
	LastRunAt time.Time
}

// Global profiler instance
var profiler = &SaveProfiler{
	phases:       make(map[string]*PhaseMetrics),
	cycleTimings: make([]time.Duration, 0, 100),
}

// GetProfiler returns the global save profiler.
func GetProfiler() *SaveProfiler {
	return profiler
}

// StartPhase begins timing a save phase (drain, reconcile, write).
// Returns a function to call when the phase completes.
func (p *SaveProfiler) StartPhase(phase string) func() {
	if !DebugEnabled {
		return func() {}
	}

	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		p.recordPhase(phase, elapsed)
	}
}

func (p *SaveProfiler) recordPhase(phase string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	metrics, ok := p.phases[phase]
	if !ok {
		metrics = &PhaseMetrics{
			Name:    phase,
			MinTime: elapsed,
			MaxTime: elapsed,
		}
		p.phases[phase] = metrics
	}

	metrics.RunCount++
	metrics.TotalTime += elapsed
	metrics.LastRunAt = time.Now()

	if elapsed < metrics.MinTime {
		metrics.MinTime = elapsed
	}
	if elapsed > metrics.MaxTime {
		metrics.MaxTime = elapsed
	}
}

// RecordCycle records a complete auto-save cycle.
func (p *SaveProfiler) RecordCycle(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.cycleCount++
	p.totalTime += elapsed
	p.lastCycleAt = time.Now()

	// Keep rolling window of last 100 cycle times
	if len(p.cycleTimings) >= 100 {
		p.cycleTimings = p.cycleTimings[1:]
	}
	p.cycleTimings = append(p.cycleTimings, elapsed)

	// Log slow cycles; a flush should not take anywhere near this long
	if elapsed > 250*time.Millisecond && DebugLog != nil {
		DebugLog.Printf("SLOW SAVE CYCLE: %v", elapsed)
	}
}

// Reset clears all recorded metrics.
func (p *SaveProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phases = make(map[string]*PhaseMetrics)
	p.cycleCount = 0
	p.totalTime = 0
	p.cycleTimings = p.cycleTimings[:0]
}

// GetStats returns a summary of save statistics.
func (p *SaveProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var sb []byte
	sb = fmt.Appendf(sb, "\n=== Save Profile ===\n")
	sb = fmt.Appendf(sb, "Total cycles: %d\n", p.cycleCount)

	if p.cycleCount > 0 {
		avg := p.totalTime / time.Duration(p.cycleCount)
		sb = fmt.Appendf(sb, "Avg cycle time: %v\n", avg)
	}

	for _, m := range p.phases {
		avg := time.Duration(0)
		if m.RunCount > 0 {
			avg = m.TotalTime / time.Duration(m.RunCount)
		}
		sb = fmt.Appendf(sb, "%s: runs=%d avg=%v min=%v max=%v\n",
			m.Name, m.RunCount, avg, m.MinTime, m.MaxTime)
	}

	return string(sb)
}
