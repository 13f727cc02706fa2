// Package resolve provides property lookup and typed coercion for rule
// evaluation. A Resolver is a read-only snapshot of key-value configuration;
// the engine never writes through it and treats concurrent read safety as a
// property of the underlying store.
package resolve

// Resolver is the abstract property store the condition engine evaluates
// against. Lookup returns the raw stored value; typed coercion is applied
// by the caller via the As* functions in this package.
type Resolver interface {
	// ContainsKey reports whether the store holds a value for key.
	ContainsKey(key string) bool
	// Lookup returns the raw value for key and whether it was present.
	Lookup(key string) (any, bool)
}

// Static is a map-backed Resolver. Useful for tests and for callers that
// already hold their configuration in memory.
type Static map[string]any

// ContainsKey reports whether the map holds a value for key.
func (s Static) ContainsKey(key string) bool {
	_, ok := s[key]
	return ok
}

// Lookup returns the raw value for key and whether it was present.
func (s Static) Lookup(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}
