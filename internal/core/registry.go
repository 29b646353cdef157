package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]TableDefinition)
	registryMu sync.RWMutex
)

// Register adds a table definition to the registry.
// Panics if a table with the same key is already registered.
func Register(def TableDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", def.Info.Key))
	}

	// Populate Columns from FieldSpecs if not set
	if len(def.Info.Columns) == 0 && len(def.FieldSpecs) > 0 {
		def.Info.Columns = make([]string, len(def.FieldSpecs))
		for i, spec := range def.FieldSpecs {
			def.Info.Columns[i] = spec.Name
		}
	}
	if def.Info.File == "" {
		def.Info.File = def.Info.Key + ".csv"
	}

	registry[def.Info.Key] = def
}

// Get returns a table definition by key.
// Returns false if not found.
func Get(key string) (TableDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// LoadOrder returns all registered tables, parents before children.
// Ties on Rank are broken by key for a stable order.
func LoadOrder() []TableDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TableDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Rank != result[j].Info.Rank {
			return result[i].Info.Rank < result[j].Info.Rank
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ResetOrder returns all registered tables, children before parents.
func ResetOrder() []TableDefinition {
	defs := LoadOrder()
	for i, j := 0, len(defs)-1; i < j; i, j = i+1, j-1 {
		defs[i], defs[j] = defs[j], defs[i]
	}
	return defs
}

// RegisteredTables returns the number of registered tables.
func RegisteredTables() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
