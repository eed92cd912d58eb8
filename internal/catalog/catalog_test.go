package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if len(c.Topics()) == 0 {
		t.Fatal("embedded catalog should not be empty")
	}
	ctx := c.Context()
	if !strings.Contains(ctx, "Web Development with MERN Stack: HTML, CSS") {
		t.Errorf("context should flatten topics, got:\n%s", ctx)
	}
	if !strings.Contains(ctx, "MERN Stack") {
		t.Error("context should list MERN Stack")
	}
	if _, ok := c.Find("web development with mern stack"); !ok {
		t.Error("embedded catalog should name the web topic \"Web Development with MERN Stack\"")
	}
}

func TestParse(t *testing.T) {
	t.Run("trims_and_skips_blank", func(t *testing.T) {
		c, err := Parse([]byte("topics:\n  - name: ' Go '\n    subtopics: [' Channels ', '']\n  - name: ''\n"))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		topics := c.Topics()
		if len(topics) != 1 || topics[0].Name != "Go" || len(topics[0].Subtopics) != 1 || topics[0].Subtopics[0] != "Channels" {
			t.Errorf("unexpected topics %+v", topics)
		}
		if c.Context() != "Go: Channels" {
			t.Errorf("context = %q", c.Context())
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Parse([]byte("topics: []\n"))
		if !errors.Is(err, ErrEmptyCatalog) {
			t.Errorf("expected ErrEmptyCatalog, got %v", err)
		}
	})

	t.Run("invalid_yaml", func(t *testing.T) {
		if _, err := Parse([]byte("topics: [")); err == nil {
			t.Error("expected YAML error")
		}
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("topics:\n  - name: Rust\n    subtopics: [Ownership]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := c.Find("rust"); !ok {
		t.Error("Find should be case-insensitive")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	def, err := Load("")
	if err != nil || len(def.Topics()) == 0 {
		t.Errorf("empty path should return default catalog, err=%v", err)
	}
}

func TestTopics_returns_copy(t *testing.T) {
	c := Default()
	ts := c.Topics()
	ts[0].Name = "mutated"
	ts[0].Subtopics[0] = "mutated"
	if c.Topics()[0].Name == "mutated" || c.Topics()[0].Subtopics[0] == "mutated" {
		t.Error("Topics should not expose internal state")
	}
}
