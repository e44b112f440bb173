package feeds

import (
	"sync"
	"time"

	"github.com/ternarybob/sentinel/internal/models"
)

// State holds the most recent scan output for API reads. A single scan runs
// at a time; readers always see the last completed scan.
type State struct {
	mu        sync.RWMutex
	headlines []*models.Headline
	lastScan  *models.ScanResult
	scanning  bool
}

func NewState() *State {
	return &State{}
}

// TryBeginScan marks a scan in progress. Returns false if one is already
// running.
func (s *State) TryBeginScan() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scanning {
		return false
	}
	s.scanning = true
	return true
}

func (s *State) EndScan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scanning = false
}

func (s *State) Scanning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanning
}

// SetResult stores one completed scan's headlines and summary atomically.
func (s *State) SetResult(headlines []*models.Headline, result *models.ScanResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headlines = headlines
	s.lastScan = result
}

// Headlines returns a copy of the last scan's headlines.
func (s *State) Headlines() []*models.Headline {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Headline, len(s.headlines))
	copy(out, s.headlines)
	return out
}

// LastScan returns the most recent scan summary, or nil before the first
// scan completes.
func (s *State) LastScan() *models.ScanResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastScan
}

// LastScanTime returns the timestamp of the most recent scan.
func (s *State) LastScanTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastScan == nil {
		return time.Time{}
	}
	return s.lastScan.Timestamp
}
