package driven

// ConfigStore holds persisted settings as a tree of tables addressed with
// dotted keys: "data.dir" is the dir entry of the [data] table.
// Values are returned as decoded; callers coerce them to the type they expect.
type ConfigStore interface {
	// Get returns the value stored at key. Tables are not values.
	Get(key string) (any, bool)

	// Keys returns the sorted value names directly below a table.
	// Keys("categories") lists the configured category overrides.
	Keys(table string) []string

	// Set stores value at key, creating intermediate tables, and persists.
	Set(key string, value any) error

	// Unset removes key and any table it leaves empty, and persists.
	// Removing a missing key is not an error.
	Unset(key string) error

	// Load re-reads the store from its backing storage.
	Load() error

	// Path identifies the backing storage.
	Path() string
}
