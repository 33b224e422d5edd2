package libemit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// BindingSpec names the handler to run for an event. In a bindings file
	// it is written either as the bare handler name or as a mapping.
	BindingSpec struct {
		Method   string `yaml:"method"`
		Priority int    `yaml:"priority"`
		Once     bool   `yaml:"once"`
	}

	// BindingSpecs accepts a single spec or a list of them.
	BindingSpecs []BindingSpec

	// Bindings maps event names to handler specs, as read from a bindings
	// file:
	//
	//	user.save:
	//	  - audit
	//	  - method: notify
	//	    priority: 10
	//	    once: true
	//	user.delete: audit
	Bindings map[string]BindingSpecs
)

func (s *BindingSpecs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		specs := make(BindingSpecs, 0, len(node.Content))
		for _, child := range node.Content {
			spec, err := decodeBindingSpec(child)
			if err != nil {
				return err
			}
			specs = append(specs, spec)
		}
		*s = specs
		return nil
	default:
		spec, err := decodeBindingSpec(node)
		if err != nil {
			return err
		}
		*s = BindingSpecs{spec}
		return nil
	}
}

func decodeBindingSpec(node *yaml.Node) (BindingSpec, error) {
	var spec BindingSpec

	switch node.Kind {
	case yaml.ScalarNode:
		if err := node.Decode(&spec.Method); err != nil {
			return spec, errors.Wrapf(ErrInvalidBinding, "line %d: %s", node.Line, err)
		}
	case yaml.MappingNode:
		if err := node.Decode(&spec); err != nil {
			return spec, errors.Wrapf(ErrInvalidBinding, "line %d: %s", node.Line, err)
		}
	default:
		return spec, errors.Wrapf(ErrInvalidBinding, "line %d: expected a handler name or mapping", node.Line)
	}

	return spec, nil
}

// ParseBindings decodes bindings from YAML. JSON documents are accepted too.
func ParseBindings(data []byte) (Bindings, error) {
	var b Bindings
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(err, "parse bindings")
	}
	if b == nil {
		b = Bindings{}
	}
	return b, nil
}

// LoadBindings reads a bindings file. Supported extensions: .yaml, .yml, .json
func LoadBindings(path string) (Bindings, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read bindings file")
	}

	return ParseBindings(data)
}

// Listener resolves every method against handlers and returns a Listener
// registering the result.
func (b Bindings) Listener(handlers map[string]Callback) (Listener, error) {
	events := make(ListenerMap, len(b))

	for event, specs := range b {
		for _, spec := range specs {
			if spec.Method == "" {
				return nil, errors.Wrapf(ErrInvalidBinding, "event %q: empty method", event)
			}

			callback, ok := handlers[spec.Method]
			if !ok || callback == nil {
				return nil, errors.Wrapf(ErrUnknownHandler, "event %q: method %q", event, spec.Method)
			}

			events[event] = append(events[event], Binding{
				Callback: callback,
				Priority: spec.Priority,
				Once:     spec.Once,
			})
		}
	}

	return &boundListener{events: events}, nil
}

type boundListener struct {
	events ListenerMap
}

func (l *boundListener) RegisterEvents() ListenerMap {
	return l.events
}
