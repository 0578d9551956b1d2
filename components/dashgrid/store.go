package dashgrid

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrDashboardNotFound is returned for unknown dashboard ids.
	ErrDashboardNotFound = errors.New("dashgrid: dashboard not found")
	// ErrPanelNotFound is returned for unknown panel keys.
	ErrPanelNotFound = errors.New("dashgrid: panel not found")
)

// InMemoryDashboardStore provides a concurrency-safe default store.
type InMemoryDashboardStore struct {
	mu   sync.RWMutex
	data map[string]Dashboard
}

// NewInMemoryDashboardStore creates an empty store.
func NewInMemoryDashboardStore() *InMemoryDashboardStore {
	return &InMemoryDashboardStore{
		data: make(map[string]Dashboard),
	}
}

// Dashboard returns a copy of the stored dashboard.
func (s *InMemoryDashboardStore) Dashboard(_ context.Context, id string) (Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.data[id]
	if !ok {
		return Dashboard{}, fmt.Errorf("%w: %s", ErrDashboardNotFound, id)
	}
	return cloneDashboard(d), nil
}

// SaveDashboard stores the dashboard, assigning keys to key-less panels.
func (s *InMemoryDashboardStore) SaveDashboard(_ context.Context, d Dashboard) error {
	if d.ID == "" {
		return fmt.Errorf("dashgrid: dashboard id is required")
	}
	d = cloneDashboard(d)
	EnsurePanelKeys(&d)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[d.ID] = d
	return nil
}

// UpdateGridPos replaces a single panel's committed position.
func (s *InMemoryDashboardStore) UpdateGridPos(_ context.Context, dashboardID, panelKey string, pos GridRect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[dashboardID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDashboardNotFound, dashboardID)
	}
	idx := slices.IndexFunc(d.Panels, func(p Panel) bool { return p.Key == panelKey })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPanelNotFound, panelKey)
	}
	d.Panels[idx].GridPos = pos
	return nil
}

func cloneDashboard(d Dashboard) Dashboard {
	d.Panels = slices.Clone(d.Panels)
	if d.Grid != nil {
		grid := *d.Grid
		d.Grid = &grid
	}
	return d
}
