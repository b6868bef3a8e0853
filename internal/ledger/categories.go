package ledger

import (
	"context"
	"fmt"
	"slices"

	"budgetbook/internal/core"
	"budgetbook/internal/log"
)

// AddCategory appends c. Names are unique; a repeat returns
// core.ErrCategoryExists.
func (s *Store) AddCategory(ctx context.Context, c core.Category) error {
	ev := core.ChangeEvent{Entity: core.EntityCategory, Operation: log.OpCreate, Key: c.Name}
	return s.apply(ctx, &ev, func() (bool, error) {
		if err := s.addCategoryLocked(c); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *Store) addCategoryLocked(c core.Category) error {
	if s.indexOfCategory(c.Name) >= 0 {
		return fmt.Errorf("%w: %s", core.ErrCategoryExists, c.Name)
	}
	s.state.Categories = append(s.state.Categories, c)
	return nil
}

// UpdateCategory merges patch into the category called name. Transactions
// and budgets referring to the old name are not touched. Renaming onto an
// existing name is rejected with core.ErrCategoryExists.
func (s *Store) UpdateCategory(ctx context.Context, name string, patch core.CategoryPatch) error {
	ev := core.ChangeEvent{Entity: core.EntityCategory, Operation: log.OpUpdate, Key: name}
	return s.apply(ctx, &ev, func() (bool, error) {
		i := s.indexOfCategory(name)
		if i < 0 {
			return false, nil
		}
		if patch.Name != nil && *patch.Name != name && s.indexOfCategory(*patch.Name) >= 0 {
			return false, fmt.Errorf("%w: %s", core.ErrCategoryExists, *patch.Name)
		}
		s.state.Categories[i] = patch.Apply(s.state.Categories[i])
		return true, nil
	})
}

// DeleteCategory removes the category called name without cascading.
func (s *Store) DeleteCategory(ctx context.Context, name string) error {
	ev := core.ChangeEvent{Entity: core.EntityCategory, Operation: log.OpDelete, Key: name}
	return s.apply(ctx, &ev, func() (bool, error) {
		i := s.indexOfCategory(name)
		if i < 0 {
			return false, nil
		}
		s.state.Categories = slices.Delete(s.state.Categories, i, i+1)
		return true, nil
	})
}

// UpdateSettings merges patch into the settings.
func (s *Store) UpdateSettings(ctx context.Context, patch core.SettingsPatch) error {
	ev := core.ChangeEvent{Entity: core.EntitySettings, Operation: log.OpUpdate}
	return s.apply(ctx, &ev, func() (bool, error) {
		s.state.Settings = patch.Apply(s.state.Settings)
		return true, nil
	})
}

func (s *Store) indexOfCategory(name string) int {
	return slices.IndexFunc(s.state.Categories, func(c core.Category) bool {
		return c.Name == name
	})
}
