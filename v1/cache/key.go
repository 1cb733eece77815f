package cache

import (
	"fmt"
	"strings"
)

// Key identifies one cached result set: a scope (entity or derived view)
// plus the lookup and filter parameters that produced it.
type Key struct {
	scope  string
	params string
}

// NewKey builds a deterministic key; parameters are rendered with fmt.Sprint
// in the order given.
func NewKey(scope string, params ...interface{}) Key {
	if len(params) == 0 {
		return Key{scope: scope}
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprint(p)
	}
	return Key{scope: scope, params: strings.Join(parts, "|")}
}

// Scope returns the entity or view the key belongs to
func (k Key) Scope() string {
	return k.scope
}

// String returns the canonical form, e.g. "employees" or "employee(123)"
func (k Key) String() string {
	if k.params == "" {
		return k.scope
	}
	return k.scope + "(" + k.params + ")"
}
