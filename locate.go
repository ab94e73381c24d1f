package vlist

import (
	"fmt"
	"sort"
)

// Locator maps a vertical offset to the first row that should be visible.
type Locator func(l *Ledger, offsetY float64) int

// LocateFirstVisibleRow returns the greatest row whose Start <= offsetY, or 0
// when the ledger is empty or offsetY is above the first row. O(log n).
func LocateFirstVisibleRow(l *Ledger, offsetY float64) int {
	n := len(l.records)
	if n == 0 {
		return 0
	}
	// first row starting strictly below offsetY
	i := sort.Search(n, func(i int) bool {
		return l.records[i].Start > offsetY
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// LinearLocate has the same contract as LocateFirstVisibleRow but scans from
// the top. Fine for small tables.
func LinearLocate(l *Ledger, offsetY float64) int {
	first := 0
	for i, r := range l.records {
		if r.Start > offsetY {
			break
		}
		first = i
	}
	return first
}

// LocatorByName resolves a config name ("binary" or "linear").
func LocatorByName(name string) (Locator, error) {
	switch name {
	case "", "binary":
		return LocateFirstVisibleRow, nil
	case "linear":
		return LinearLocate, nil
	}
	return nil, fmt.Errorf("vlist: unknown locator %q", name)
}
