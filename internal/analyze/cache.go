package analyze

import (
	"sync"
)

// Cache memoizes LoadFunc results by runtime function name. Its lifetime is
// owned by the caller; share one only among tests that may see each other's entries.
type Cache struct {
	mu    sync.Mutex
	funcs map[string]*FuncInfo
	load  func(fn any) (*FuncInfo, error)
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		funcs: make(map[string]*FuncInfo),
		load:  LoadFunc,
	}
}

// Func returns the cached FuncInfo for fn, loading it on first use.
func (c *Cache) Func(fn any) (*FuncInfo, error) {
	name, _, _, err := Locate(fn)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if info, ok := c.funcs[name]; ok {
		return info, nil
	}

	info, err := c.load(fn)
	if err != nil {
		return nil, err
	}

	c.funcs[name] = info

	return info, nil
}

// Len returns the number of cached functions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.funcs)
}
