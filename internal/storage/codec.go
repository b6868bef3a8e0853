package storage

import (
	"encoding/json"
	"fmt"

	"budgetbook/internal/core"
)

// Encode serialises the state as JSON with the keys transactions, budgets,
// categories and settings.
func Encode(s core.State) ([]byte, error) {
	data, err := json.Marshal(normalize(s))
	if err != nil {
		return nil, fmt.Errorf("encode ledger state: %w", err)
	}
	return data, nil
}

// Decode parses a payload written by Encode. Missing collections decode as
// empty and missing settings as the defaults.
func Decode(data []byte) (core.State, error) {
	var raw struct {
		core.State
		Settings *core.Settings `json:"settings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return core.State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	s := raw.State
	if raw.Settings != nil {
		s.Settings = *raw.Settings
	} else {
		s.Settings = core.DefaultSettings()
	}
	return normalize(s), nil
}

func normalize(s core.State) core.State {
	if s.Transactions == nil {
		s.Transactions = []core.Transaction{}
	}
	if s.Budgets == nil {
		s.Budgets = []core.Budget{}
	}
	if s.Categories == nil {
		s.Categories = []core.Category{}
	}
	return s
}
