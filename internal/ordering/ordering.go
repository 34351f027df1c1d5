// Package ordering assigns and maintains the integer order of lists and items.
//
// List orders within a board are unique, dense and zero-based at steady state.
// Item orders are optional; items without one sort after ordered items.
package ordering

import (
	"errors"
	"fmt"
	"sort"

	"github.com/madhankd/madhanboard-v2/internal/models"
)

// Reorder validation errors
var (
	ErrDuplicateID    = errors.New("list appears more than once")
	ErrDuplicateOrder = errors.New("order value used more than once")
	ErrNegativeOrder  = errors.New("order cannot be negative")
	ErrUnknownList    = errors.New("list does not belong to the board")
	ErrNotDense       = errors.New("orders must run from 0 without gaps")
	ErrUnknownTarget  = errors.New("list to move not found")
)

// Next returns the order for a new sibling: one past the current maximum, or
// 0 when there are none. While orders are dense this equals the sibling count.
func Next(orders []int) int {
	next := 0
	for _, o := range orders {
		if o+1 > next {
			next = o + 1
		}
	}
	return next
}

// NextList returns the order for a list appended to lists
func NextList(lists []*models.BoardList) int {
	orders := make([]int, len(lists))
	for i, l := range lists {
		orders[i] = l.Order
	}
	return Next(orders)
}

// NextItem returns the order for an item appended to items; unordered items
// are ignored
func NextItem(items []*models.ListItem) int {
	orders := make([]int, 0, len(items))
	for _, it := range items {
		if it.Order != nil {
			orders = append(orders, *it.Order)
		}
	}
	return Next(orders)
}

// SortLists sorts lists ascending by order, ties by creation time then id
func SortLists(lists []*models.BoardList) {
	sort.SliceStable(lists, func(i, j int) bool {
		a, b := lists[i], lists[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// SortItems sorts items ascending by order. Items without an order come after
// ordered ones; ties are broken by creation time then id.
func SortItems(items []*models.ListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.Order != nil && b.Order == nil:
			return true
		case a.Order == nil && b.Order != nil:
			return false
		case a.Order != nil && *a.Order != *b.Order:
			return *a.Order < *b.Order
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// ValidateReorder checks a requested reorder against the board's current lists.
//
// Updates may name any subset of the lists. Every id must be known and appear
// once, and after applying the updates to the current orders the board must
// hold each order 0..N-1 exactly once.
func ValidateReorder(current []*models.BoardList, updates []models.ListOrder) error {
	final := make(map[string]int, len(current))
	for _, l := range current {
		final[l.ID] = l.Order
	}

	seen := make(map[string]bool, len(updates))
	for _, u := range updates {
		if _, ok := final[u.ID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownList, u.ID)
		}
		if seen[u.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, u.ID)
		}
		if u.Order < 0 {
			return fmt.Errorf("%w: %s has %d", ErrNegativeOrder, u.ID, u.Order)
		}
		seen[u.ID] = true
		final[u.ID] = u.Order
	}

	used := make(map[int]bool, len(final))
	for _, o := range final {
		if used[o] {
			return fmt.Errorf("%w: %d", ErrDuplicateOrder, o)
		}
		used[o] = true
	}
	for i := 0; i < len(final); i++ {
		if !used[i] {
			return fmt.Errorf("%w: %d is missing", ErrNotDense, i)
		}
	}
	return nil
}

// Move returns the full reorder that moves listID to position, keeping the
// relative order of every other list. The position is clamped to the valid
// range. lists must already be sorted by order.
func Move(lists []*models.BoardList, listID string, position int) ([]models.ListOrder, error) {
	from := -1
	for i, l := range lists {
		if l.ID == listID {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, listID)
	}

	if position < 0 {
		position = 0
	}
	if position > len(lists)-1 {
		position = len(lists) - 1
	}

	ids := make([]string, 0, len(lists))
	for i, l := range lists {
		if i != from {
			ids = append(ids, l.ID)
		}
	}
	ids = append(ids[:position], append([]string{listID}, ids[position:]...)...)

	out := make([]models.ListOrder, len(ids))
	for i, id := range ids {
		out[i] = models.ListOrder{ID: id, Order: i}
	}
	return out, nil
}

// Compact renumbers lists 0..N-1 in their current sorted order and returns
// only the entries whose order changes. lists must already be sorted.
func Compact(lists []*models.BoardList) []models.ListOrder {
	var out []models.ListOrder
	for i, l := range lists {
		if l.Order != i {
			out = append(out, models.ListOrder{ID: l.ID, Order: i})
		}
	}
	return out
}

// Changed drops the updates that would leave a list at its current order
func Changed(current []*models.BoardList, updates []models.ListOrder) []models.ListOrder {
	orders := make(map[string]int, len(current))
	for _, l := range current {
		orders[l.ID] = l.Order
	}
	var out []models.ListOrder
	for _, u := range updates {
		if o, ok := orders[u.ID]; !ok || o != u.Order {
			out = append(out, u)
		}
	}
	return out
}
