package qsim

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

/*
Metrics counts gate applications and pool activity. All methods are safe on
a nil receiver, so registers and pools built without metrics skip recording
entirely.
*/
type Metrics struct {
	mu                  sync.RWMutex
	GateCount           int64
	ControlledGateCount int64
	Dispatches          int64
	ChunksProcessed     int64
	TotalGateTime       time.Duration

	AverageGateLatency time.Duration
	P95GateLatency     time.Duration
	P99GateLatency     time.Duration

	// sliding window for percentile calculation
	latencyWindow []time.Duration
	windowSize    int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencyWindow: make([]time.Duration, 0, 256),
		windowSize:    256,
	}
}

func (m *Metrics) recordGate(startTime time.Time, controlled bool) {
	if m == nil {
		return
	}

	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	if controlled {
		m.ControlledGateCount++
	} else {
		m.GateCount++
	}

	m.TotalGateTime += duration
	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) recordDispatch() {
	if m == nil {
		return
	}

	m.mu.Lock()
	m.Dispatches++
	m.mu.Unlock()
}

func (m *Metrics) recordChunk() {
	if m == nil {
		return
	}

	m.mu.Lock()
	m.ChunksProcessed++
	m.mu.Unlock()
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	total := m.GateCount + m.ControlledGateCount
	m.AverageGateLatency = m.TotalGateTime / time.Duration(total)

	m.latencyWindow = append(m.latencyWindow, duration)
	if len(m.latencyWindow) > m.windowSize {
		m.latencyWindow = m.latencyWindow[1:]
	}

	sorted := make([]time.Duration, len(m.latencyWindow))
	copy(sorted, m.latencyWindow)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	p95Index := min(int(float64(len(sorted))*0.95), len(sorted)-1)
	p99Index := min(int(float64(len(sorted))*0.99), len(sorted)-1)

	m.P95GateLatency = sorted[p95Index]
	m.P99GateLatency = sorted[p99Index]
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := map[string]interface{}{
		"gates":            m.GateCount,
		"controlled_gates": m.ControlledGateCount,
		"dispatches":       m.Dispatches,
		"chunks":           m.ChunksProcessed,
		"total_gate_time":  m.TotalGateTime.String(),
		"avg_latency":      m.AverageGateLatency.String(),
		"p95_latency":      m.P95GateLatency.String(),
		"p99_latency":      m.P99GateLatency.String(),
	}

	log.Debug("metrics exported", "gates", m.GateCount, "controlled", m.ControlledGateCount)
	return out
}
