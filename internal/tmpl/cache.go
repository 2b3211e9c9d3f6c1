package tmpl

import (
	"encoding/json"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Cache holds compiled templates by name. It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	engine  Engine
	entries map[string]*entry
	logger  *zap.Logger
}

// entry keeps a compile failure so it can be reported when the template is used.
type entry struct {
	tpl Template
	err error
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache returns an empty cache compiling with engine.
func NewCache(engine Engine, opts ...CacheOption) *Cache {
	c := &Cache{
		engine:  engine,
		entries: make(map[string]*entry),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine returns the engine templates are compiled with.
func (c *Cache) Engine() Engine {
	return c.engine
}

// Compile compiles source and stores it under name, replacing any previous
// template. A compile failure is returned and also stored, so later
// Transform calls on name report it.
func (c *Cache) Compile(name, source string) error {
	tpl, err := c.engine.Compile(name, source)
	c.mu.Lock()
	c.entries[name] = &entry{tpl: tpl, err: err}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("template does not compile", zap.String("template", name), zap.Error(err))
		return err
	}
	c.logger.Debug("template compiled", zap.String("template", name), zap.String("engine", c.engine.Name()))
	return nil
}

// Get returns the compiled template stored under name.
func (c *Cache) Get(name string) (Template, error) {
	c.mu.RLock()
	e, ok := c.entries[name]
	c.mu.RUnlock()
	if !ok {
		return nil, newError(KindNotFound, name, nil)
	}
	if e.err != nil {
		return nil, e.err
	}
	return e.tpl, nil
}

// Evict removes name and reports whether it was present.
func (c *Cache) Evict(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[name]
	delete(c.entries, name)
	return ok
}

// Names returns the stored template names, sorted.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored templates.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Transform applies the template stored under name to the JSON document data.
func (c *Cache) Transform(name, data string) (string, error) {
	tpl, err := c.Get(name)
	if err != nil {
		return "", err
	}
	return apply(tpl, name, data)
}

// CompileAndTransform compiles source without storing it and applies it to data.
func (c *Cache) CompileAndTransform(source, data string) (string, error) {
	tpl, err := c.engine.Compile("", source)
	if err != nil {
		return "", err
	}
	return apply(tpl, "", data)
}

func apply(tpl Template, name, data string) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return "", newError(KindData, name, err)
	}
	return tpl.Execute(v)
}
