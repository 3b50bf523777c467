package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/socialite/pkg/socialite"
)

// ProviderEntry is one driver in a provider table. Kind defaults to the
// driver name when empty.
type ProviderEntry struct {
	Kind                     string `yaml:"kind"`
	socialite.ProviderConfig `yaml:",inline"`
}

// ProviderTable is the decoded form of a provider YAML file.
type ProviderTable struct {
	Default   string                   `yaml:"default"`
	Providers map[string]ProviderEntry `yaml:"providers"`
}

// Names returns the driver names in the table, sorted.
func (t ProviderTable) Names() []string {
	return slices.Sorted(maps.Keys(t.Providers))
}

// LoadProviders reads and decodes a provider table from path.
func LoadProviders(path string) (ProviderTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProviderTable{}, errors.Join(ErrReadingFile, err)
	}
	return ParseProviders(data)
}

// envRef matches ${NAME}. A bare $NAME is left alone so secrets may
// contain dollar signs.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		return []byte(os.Getenv(string(ref[2 : len(ref)-1])))
	})
}

// ParseProviders decodes a provider table. ${NAME} references are expanded
// from the environment first, and unknown keys are rejected. Every entry is
// checked for a supported kind and valid credentials.
func ParseProviders(data []byte) (ProviderTable, error) {
	dec := yaml.NewDecoder(bytes.NewReader(expandEnv(data)))
	dec.KnownFields(true)

	var table ProviderTable
	if err := dec.Decode(&table); err != nil {
		return ProviderTable{}, errors.Join(ErrInvalidProviderTable, err)
	}

	var errs []error
	for _, name := range table.Names() {
		entry := table.Providers[name]
		if _, err := entry.kind(name); err != nil {
			errs = append(errs, fmt.Errorf("provider %q: %w", name, err))
			continue
		}
		if err := entry.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("provider %q: %w", name, err))
		}
	}
	if table.Default != "" {
		if _, ok := table.Providers[table.Default]; !ok {
			errs = append(errs, fmt.Errorf("default provider %q is not defined", table.Default))
		}
	}
	if len(errs) > 0 {
		return ProviderTable{}, errors.Join(append([]error{ErrInvalidProviderTable}, errs...)...)
	}
	return table, nil
}

// RegisterProviders registers every entry of table with m.
func RegisterProviders(m *socialite.Manager, table ProviderTable) error {
	for _, name := range table.Names() {
		entry := table.Providers[name]
		kind, err := entry.kind(name)
		if err != nil {
			return fmt.Errorf("provider %q: %w", name, err)
		}
		if err := m.RegisterConfig(name, kind, entry.ProviderConfig); err != nil {
			return fmt.Errorf("provider %q: %w", name, err)
		}
	}
	return nil
}

func (e ProviderEntry) kind(name string) (socialite.Kind, error) {
	if e.Kind != "" {
		return socialite.ParseKind(e.Kind)
	}
	return socialite.ParseKind(name)
}
