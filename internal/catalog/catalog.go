// Package catalog holds the placement topic catalog that grounds the classifier
// and content prompts.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed topics.yaml
var defaultTopics []byte

// ErrEmptyCatalog is returned when a catalog file defines no topics.
var ErrEmptyCatalog = errors.New("catalog has no topics")

// Topic is one catalog entry.
type Topic struct {
	Name      string   `yaml:"name" json:"name"`
	Subtopics []string `yaml:"subtopics" json:"subtopics"`
}

// Catalog is an immutable list of topics. It is safe for concurrent use.
type Catalog struct {
	topics  []Topic
	context string
}

type catalogFile struct {
	Topics []Topic `yaml:"topics"`
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultTopics)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads a YAML catalog from path. An empty path returns Default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	topics := make([]Topic, 0, len(f.Topics))
	for _, t := range f.Topics {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		subs := make([]string, 0, len(t.Subtopics))
		for _, s := range t.Subtopics {
			if s = strings.TrimSpace(s); s != "" {
				subs = append(subs, s)
			}
		}
		topics = append(topics, Topic{Name: name, Subtopics: subs})
	}
	if len(topics) == 0 {
		return nil, ErrEmptyCatalog
	}

	return &Catalog{topics: topics, context: flatten(topics)}, nil
}

// Topics returns a copy of the catalog entries.
func (c *Catalog) Topics() []Topic {
	out := make([]Topic, len(c.topics))
	for i, t := range c.topics {
		out[i] = Topic{Name: t.Name, Subtopics: append([]string(nil), t.Subtopics...)}
	}
	return out
}

// Context returns the flattened "Topic: sub, sub" lines embedded verbatim in prompts.
func (c *Catalog) Context() string {
	return c.context
}

// Find looks a topic up by case-insensitive name.
func (c *Catalog) Find(name string) (Topic, bool) {
	for _, t := range c.topics {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, true
		}
	}
	return Topic{}, false
}

func flatten(topics []Topic) string {
	var b strings.Builder
	for i, t := range topics {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.Name)
		b.WriteString(": ")
		b.WriteString(strings.Join(t.Subtopics, ", "))
	}
	return b.String()
}
