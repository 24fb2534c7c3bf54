// Package state provides thread-safe state management for the interactive
// front ends: the chart context, the chart time and the searches run so far.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/position"
	"github.com/litescript/ls-astroclock/internal/search"
)

// SearchRecord is one search that was run.
type SearchRecord struct {
	Query   string         `json:"query"`
	Forward bool           `json:"forward"`
	From    float64        `json:"from"`
	Result  *search.Result `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
	At      time.Time      `json:"at"`
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	ctx position.Context
	jd  float64

	// Last search
	query   string
	last    *search.Result
	lastErr error

	// Search history (ring buffer)
	history    []SearchRecord
	maxHistory int
	writeAt    int
}

// Config holds configuration for the state manager.
type Config struct {
	Context    position.Context
	JD         float64 // initial chart time; zero means now
	MaxHistory int
}

// DefaultConfig returns the default configuration: a tropical geocentric
// chart for now.
func DefaultConfig() Config {
	return Config{MaxHistory: 50}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxHistory := cfg.MaxHistory
	if maxHistory <= 0 {
		maxHistory = 50
	}
	jd := cfg.JD
	if jd == 0 {
		jd = astro.JulianDay(time.Now())
	}
	return &Manager{
		ctx:        cfg.Context,
		jd:         jd,
		maxHistory: maxHistory,
		history:    make([]SearchRecord, 0, maxHistory),
	}
}

// SetContext replaces the chart context.
func (m *Manager) SetContext(ctx position.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx = ctx
}

// SetZodiac changes the zodiac of the chart context.
func (m *Manager) SetZodiac(z astro.Zodiac) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx.Zodiac = z
}

// SetHeliocentric switches between heliocentric and geocentric positions.
func (m *Manager) SetHeliocentric(helio bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx.Heliocentric = helio
}

// SetObserver moves the observer.
func (m *Manager) SetObserver(o position.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx.Observer = o
}

// SetJD moves the chart time.
func (m *Manager) SetJD(jd float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jd = jd
}

// Context returns the chart context.
func (m *Manager) Context() position.Context {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ctx
}

// JD returns the chart time.
func (m *Manager) JD() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jd
}

// RecordSearch stores the outcome of a search.
func (m *Manager) RecordSearch(query string, forward bool, from float64, res search.Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := SearchRecord{Query: query, Forward: forward, From: from, At: time.Now()}
	m.query = query
	m.lastErr = err
	if err != nil {
		rec.Error = err.Error()
		m.last = nil
	} else {
		r := res
		rec.Result = &r
		m.last = &r
	}
	m.addRecord(rec)
}

// addRecord adds a record to the ring buffer.
func (m *Manager) addRecord(rec SearchRecord) {
	if len(m.history) < m.maxHistory {
		m.history = append(m.history, rec)
	} else {
		m.history[m.writeAt] = rec
		m.writeAt = (m.writeAt + 1) % m.maxHistory
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Context   position.Context
	JD        float64
	Query     string
	Last      *search.Result
	LastError error
	History   []SearchRecord
}

// Time returns the chart time as a calendar time.
func (s Snapshot) Time() time.Time {
	return astro.Time(s.JD)
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var last *search.Result
	if m.last != nil {
		r := *m.last
		last = &r
	}
	return Snapshot{
		Context:   m.ctx,
		JD:        m.jd,
		Query:     m.query,
		Last:      last,
		LastError: m.lastErr,
		History:   m.historyOrdered(),
	}
}

// historyOrdered returns records in chronological order.
func (m *Manager) historyOrdered() []SearchRecord {
	if len(m.history) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.history) < m.maxHistory {
		result := make([]SearchRecord, len(m.history))
		copy(result, m.history)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]SearchRecord, m.maxHistory)
	for i := 0; i < m.maxHistory; i++ {
		result[i] = m.history[(m.writeAt+i)%m.maxHistory]
	}
	return result
}

// RecentSearches returns the last n searches.
func (m *Manager) RecentSearches(n int) []SearchRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.historyOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
