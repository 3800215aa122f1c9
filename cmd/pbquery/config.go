package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config is the optional pbquery.yaml a user can point --config at, so
// that a frequently-used descriptor set and a handful of short aliases
// for long fully-qualified type names don't need to be retyped on every
// invocation.
type config struct {
	// DescriptorSet is the default path passed to --descriptor-set when
	// the flag is omitted.
	DescriptorSet string `yaml:"descriptor_set"`
	// Aliases maps a short name to a fully-qualified message type name,
	// e.g. "book" -> "library.Book".
	Aliases map[string]string `yaml:"aliases"`
}

func loadConfig(path string) (config, error) {
	if path == "" {
		return config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, err
	}
	var c config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return config{}, err
	}
	return c, nil
}

// resolveTypeName expands a short alias defined in c, or returns name
// unchanged if it is not an alias.
func (c config) resolveTypeName(name string) string {
	if full, ok := c.Aliases[name]; ok {
		return full
	}
	return name
}
