// Package serialization provides the config registry used to round-trip
// adapters, transforms, and networks.
//
// Objects serialize to a {"kind": ..., "config": ...} JSON envelope. Each
// concrete type registers a factory for its kind (usually from an init
// function), so deserialization reconstructs objects through the same
// constructor contract they were built with. Learned weights are not
// persisted; rebuilt objects re-initialize lazily.
package serialization

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Saveable is implemented by objects that can round-trip through the
// registry.
type Saveable interface {
	// Kind returns the registered type identifier.
	Kind() string
	// Config returns the constructor arguments as a JSON-compatible map.
	Config() map[string]any
}

// Factory reconstructs an object from its decoded config map.
//
// JSON decoding follows encoding/json conventions: numbers arrive as
// float64, string lists as []any.
type Factory func(config map[string]any) (any, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register associates a kind with a factory.
// Panics if the kind is already registered; kinds are process-global.
func Register(kind string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("serialization: kind %q registered twice", kind))
	}
	factories[kind] = factory
}

type envelope struct {
	Kind   string         `json:"kind"`
	Config map[string]any `json:"config"`
}

// Serialize encodes obj into its JSON envelope.
func Serialize(obj Saveable) ([]byte, error) {
	return json.Marshal(envelope{Kind: obj.Kind(), Config: obj.Config()})
}

// Deserialize reconstructs an object from its JSON envelope using the
// registered factory for its kind.
func Deserialize(data []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	return FromEnvelope(env.Kind, env.Config)
}

// FromEnvelope reconstructs an object from an already-decoded envelope.
func FromEnvelope(kind string, config map[string]any) (any, error) {
	mu.RLock()
	factory, ok := factories[kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no factory registered for kind %q", kind)
	}
	if config == nil {
		config = map[string]any{}
	}
	return factory(config)
}

// Envelope returns the {kind, config} representation of obj as a map,
// for embedding inside a parent object's config.
func Envelope(obj Saveable) map[string]any {
	if obj == nil {
		return nil
	}
	return map[string]any{"kind": obj.Kind(), "config": obj.Config()}
}

// FromEmbedded reconstructs an object embedded via Envelope inside a parent
// config. Returns nil for nil input.
func FromEmbedded(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("embedded object must be a map, got %T", value)
	}
	kind, _ := m["kind"].(string)
	config, _ := m["config"].(map[string]any)
	return FromEnvelope(kind, config)
}

// Strings coerces a decoded JSON value ([]any of strings) into []string.
func Strings(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Floats coerces a decoded JSON value ([]any of numbers) into []float64.
func Floats(value any) []float64 {
	switch v := value.(type) {
	case nil:
		return nil
	case []float64:
		return v
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			if f, ok := item.(float64); ok {
				out = append(out, f)
			}
		}
		return out
	default:
		return nil
	}
}

// Ints coerces a decoded JSON value ([]any of numbers) into []int.
func Ints(value any) []int {
	switch v := value.(type) {
	case nil:
		return nil
	case []int:
		return v
	case []any:
		out := make([]int, 0, len(v))
		for _, item := range v {
			if f, ok := item.(float64); ok {
				out = append(out, int(f))
			}
		}
		return out
	default:
		return nil
	}
}

// Int coerces a decoded JSON number into an int.
func Int(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
