package engine

import (
	"sync"

	"github.com/bruno-rino/harp/native"
)

// tracker records the product graphs and detached variables the engine has
// handed out and not yet released. The live counts expose callers that drop
// a graph without deleting it.
type tracker struct {
	mu        sync.Mutex
	products  map[*native.Product]struct{}
	variables map[*native.Variable]struct{}
}

func newTracker() *tracker {
	return &tracker{
		products:  make(map[*native.Product]struct{}),
		variables: make(map[*native.Variable]struct{}),
	}
}

func (t *tracker) addProduct(p *native.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.products[p] = struct{}{}
}

func (t *tracker) removeProduct(p *native.Product) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.products[p]; !ok {
		return false
	}
	delete(t.products, p)
	return true
}

func (t *tracker) addVariable(v *native.Variable) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.variables[v] = struct{}{}
}

func (t *tracker) removeVariable(v *native.Variable) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.variables[v]; !ok {
		return false
	}
	delete(t.variables, v)
	return true
}

func (t *tracker) liveProducts() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.products)
}

func (t *tracker) liveVariables() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.variables)
}
