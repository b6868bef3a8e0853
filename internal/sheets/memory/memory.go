package memory

import (
	"context"
	"sync"

	"budgetbook/internal/core"
	ports "budgetbook/internal/sheets"
)

// Mirror keeps the rendered tabs in memory. It backs the sync worker when
// no spreadsheet is configured and stands in for Sheets in tests.
type Mirror struct {
	mu     sync.Mutex
	prefix string
	tabs   map[string][][]any
	writes int
	err    error
}

var _ ports.StateMirror = (*Mirror)(nil)

func New(prefix string) *Mirror {
	return &Mirror{prefix: prefix, tabs: map[string][][]any{}}
}

// Mirror replaces all tabs with the rendering of s.
func (m *Mirror) Mirror(_ context.Context, s core.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, tab := range ports.BuildTabs(m.prefix, s) {
		m.tabs[tab.Title] = tab.Rows
	}
	m.writes++
	return nil
}

// Tab returns the rows last written to title.
func (m *Mirror) Tab(title string) ([][]any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.tabs[title]
	return rows, ok
}

// Writes reports how many full mirrors succeeded.
func (m *Mirror) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// FailWith makes subsequent mirrors fail with err; nil clears it.
func (m *Mirror) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
