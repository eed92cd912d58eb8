package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	SetVersion("test-version")
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "test-version") {
		t.Errorf("expected version output to contain 'test-version', got: %s", out)
	}
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sub := range []string{"ask", "topics", "render", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing subcommand %q", sub)
		}
	}
}

func TestAskRequiresQuery(t *testing.T) {
	if _, err := executeCommand("ask"); err == nil {
		t.Error("ask without a query should fail")
	}
}

func TestTopicsCommand(t *testing.T) {
	t.Setenv("CATALOG_PATH", "")
	out, err := executeCommand("topics", "--env-file", filepath.Join(t.TempDir(), "none.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Web Development with MERN Stack") {
		t.Errorf("topics output missing catalog entry: %s", out)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	meta := filepath.Join(dir, "card.json")
	if err := os.WriteFile(meta, []byte(`{"title":"Deadlocks","category":"os","keyConcepts":["Mutual exclusion"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "card.svg")

	if _, err := executeCommand("render", "--metadata", meta, "--output", out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(svg), "<svg") || !strings.Contains(string(svg), "Deadlocks") {
		t.Errorf("unexpected card: %.120s", svg)
	}
}

func TestRenderCommand_bad_metadata(t *testing.T) {
	meta := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(meta, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := executeCommand("render", "--metadata", meta, "--output", ""); err == nil {
		t.Error("expected parse error")
	}
}

func TestTopicsCommand_single_topic(t *testing.T) {
	t.Setenv("CATALOG_PATH", "")
	out, err := executeCommand("topics", "web development with mern stack", "--env-file", filepath.Join(t.TempDir(), "none.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "REST APIs") || strings.Contains(out, "Web Development with MERN Stack") {
		t.Errorf("expected only subtopics, got: %s", out)
	}
	if _, err := executeCommand("topics", "astrology"); err == nil {
		t.Error("unknown topic should fail")
	}
}
