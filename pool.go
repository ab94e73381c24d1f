package vlist

import "fmt"

// Resource is a reusable unit of row-rendering state. Kind names the row
// template it renders; resources are only ever reused for rows of the same kind.
type Resource[K comparable] interface {
	comparable
	Kind() K
}

// RecyclePool parks resources that are not bound to any visible row, keyed by
// kind. It has no capacity bound; in steady scrolling it holds about one
// screenful of rows.
type RecyclePool[K comparable, R Resource[K]] struct {
	free   map[K][]R
	parked map[R]struct{}
}

// NewRecyclePool creates an empty pool.
func NewRecyclePool[K comparable, R Resource[K]]() *RecyclePool[K, R] {
	return &RecyclePool[K, R]{
		free:   make(map[K][]R),
		parked: make(map[R]struct{}),
	}
}

// Withdraw removes and returns a resource of the given kind.
// The most recently deposited one comes back first.
func (p *RecyclePool[K, R]) Withdraw(kind K) (R, bool) {
	stack := p.free[kind]
	if len(stack) == 0 {
		var zero R
		return zero, false
	}
	res := stack[len(stack)-1]
	var zero R
	stack[len(stack)-1] = zero
	p.free[kind] = stack[:len(stack)-1]
	delete(p.parked, res)
	return res, true
}

// Deposit parks res under its kind. Depositing a resource that is already
// parked is an InvariantViolationError and leaves the pool unchanged.
func (p *RecyclePool[K, R]) Deposit(res R) error {
	if _, ok := p.parked[res]; ok {
		return &InvariantViolationError{
			Op:     "deposit",
			Detail: fmt.Sprintf("resource of kind %v is already in the pool", res.Kind()),
		}
	}
	kind := res.Kind()
	p.free[kind] = append(p.free[kind], res)
	p.parked[res] = struct{}{}
	return nil
}

// Contains reports whether res is currently parked.
func (p *RecyclePool[K, R]) Contains(res R) bool {
	_, ok := p.parked[res]
	return ok
}

// Len returns the number of parked resources.
func (p *RecyclePool[K, R]) Len() int {
	return len(p.parked)
}

// LenKind returns the number of parked resources of one kind.
func (p *RecyclePool[K, R]) LenKind(kind K) int {
	return len(p.free[kind])
}
