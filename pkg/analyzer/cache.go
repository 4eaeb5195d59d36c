package analyzer

import "sync"

// Cache holds per-file analysis results keyed by file identity, plus a
// bidirectional reference map so re-analysis of one file can cheaply find
// and invalidate its dependents. Old results are fully retracted before new
// ones install; stale and fresh entries for one key never coexist.
type Cache struct {
	mu       sync.Mutex
	results  map[string]*FileAnalysis
	refs     map[string]map[string]bool // file -> files it references
	backRefs map[string]map[string]bool // file -> files that reference it
}

func NewCache() *Cache {
	return &Cache{
		results:  map[string]*FileAnalysis{},
		refs:     map[string]map[string]bool{},
		backRefs: map[string]map[string]bool{},
	}
}

func (c *Cache) Get(path string) (*FileAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fa, ok := c.results[path]
	return fa, ok
}

// Update installs a fresh analysis for path, replacing any previous one.
// references lists the files path depends on (imported components).
func (c *Cache) Update(path string, analysis *FileAnalysis, references []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.retractLocked(path)

	refSet := make(map[string]bool, len(references))
	for _, ref := range references {
		refSet[ref] = true
		back := c.backRefs[ref]
		if back == nil {
			back = map[string]bool{}
			c.backRefs[ref] = back
		}
		back[path] = true
	}
	c.refs[path] = refSet
	c.results[path] = analysis
}

// Invalidate drops path's results and, transitively, every file that
// references it. It returns the evicted paths so callers can schedule
// re-analysis.
func (c *Cache) Invalidate(path string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var evicted []string
	pending := []string{path}
	seen := map[string]bool{}

	for len(pending) > 0 {
		p := pending[0]
		pending = pending[1:]
		if seen[p] {
			continue
		}
		seen[p] = true

		for dependent := range c.backRefs[p] {
			pending = append(pending, dependent)
		}

		if _, ok := c.results[p]; ok {
			evicted = append(evicted, p)
		}
		c.retractLocked(p)
	}

	return evicted
}

// retractLocked removes path's results and forward references. Back
// references into path from other files stay: those files still reference
// it even while its own analysis is absent.
func (c *Cache) retractLocked(path string) {
	delete(c.results, path)
	for ref := range c.refs[path] {
		delete(c.backRefs[ref], path)
		if len(c.backRefs[ref]) == 0 {
			delete(c.backRefs, ref)
		}
	}
	delete(c.refs, path)
}
