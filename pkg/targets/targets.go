// Package targets loads the locations the watcher polls from YAML/JSON files.
package targets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	KindTime     = "time"
	KindPrice    = "price"
	KindProducts = "products"
)

// Target is one location (or trip, for price estimates) to poll.
type Target struct {
	ID             string      `json:"id" yaml:"id" validate:"required"`
	Name           string      `json:"name" yaml:"name"`
	Kind           string      `json:"kind" yaml:"kind" validate:"oneof=time price products"`
	StartLatitude  Coordinate  `json:"start_latitude" yaml:"start_latitude" validate:"min=-90,max=90"`
	StartLongitude Coordinate  `json:"start_longitude" yaml:"start_longitude" validate:"min=-180,max=180"`
	EndLatitude    *Coordinate `json:"end_latitude" yaml:"end_latitude" validate:"omitempty,min=-90,max=90"`
	EndLongitude   *Coordinate `json:"end_longitude" yaml:"end_longitude" validate:"omitempty,min=-180,max=180"`
	CustomerUUID   *string     `json:"customer_uuid" yaml:"customer_uuid"`
	ProductID      *string     `json:"product_id" yaml:"product_id"`
}

type fileRegistry struct {
	Targets []Target `json:"targets" yaml:"targets"`
}

// Registry holds the validated targets of one file.
type Registry struct {
	mu      sync.RWMutex
	targets []Target
	idx     map[string]Target
}

// LoadRegistry loads targets from a .yaml, .yml or .json file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("targets file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open targets file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	parsed, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(parsed.Targets)
}

// NewRegistry sanitizes and validates targets.
func NewRegistry(targets []Target) (*Registry, error) {
	if len(targets) == 0 {
		return nil, errors.New("targets file contains no targets entries")
	}

	reg := &Registry{
		targets: make([]Target, len(targets)),
		idx:     make(map[string]Target, len(targets)),
	}
	for i := range targets {
		t := sanitizeTarget(targets[i])
		if err := validateTarget(t); err != nil {
			return nil, fmt.Errorf("targets[%d]: %w", i, err)
		}
		if _, exists := reg.idx[t.ID]; exists {
			return nil, fmt.Errorf("duplicate target id %q", t.ID)
		}
		reg.targets[i] = t
		reg.idx[t.ID] = t
	}
	return reg, nil
}

func parseRegistry(data []byte, ext string) (fileRegistry, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		reg, err := unmarshalRegistry(d.name, data, d.fn)
		if err == nil {
			return reg, nil
		}
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fileRegistry{}, errors.Join(errs...)
	}
	return fileRegistry{}, errors.New("targets file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalRegistry(name string, data []byte, fn unmarshalFn) (fileRegistry, error) {
	var reg fileRegistry
	if err := fn(data, &reg); err != nil {
		return fileRegistry{}, fmt.Errorf("decode %s targets: %w", name, err)
	}
	return reg, nil
}

func sanitizeTarget(t Target) Target {
	t.ID = strings.TrimSpace(t.ID)
	t.Name = strings.TrimSpace(t.Name)
	t.Kind = strings.ToLower(strings.TrimSpace(t.Kind))
	if t.Kind == "" {
		t.Kind = KindTime
	}
	if t.Name == "" {
		t.Name = t.ID
	}
	return t
}

func validateTarget(t Target) error {
	if err := validate.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate target %q: %w", t.ID, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, formatValidationError(e))
		}
		return fmt.Errorf("target %q: %s", t.ID, strings.Join(msgs, "; "))
	}
	if t.Kind == KindPrice && (t.EndLatitude == nil || t.EndLongitude == nil) {
		return fmt.Errorf("end_latitude and end_longitude are required for price target %q", t.ID)
	}
	return nil
}

// All returns a copy of the loaded targets in file order.
func (r *Registry) All() []Target {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// ByID returns the target with the given id.
func (r *Registry) ByID(id string) (Target, bool) {
	if r == nil {
		return Target{}, false
	}
	id = strings.TrimSpace(id)

	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.idx[id]
	return t, ok
}
