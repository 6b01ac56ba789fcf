package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphologue/internal/config"
	"github.com/matzehuels/graphologue/pkg/graph"
	"github.com/matzehuels/graphologue/pkg/integrations/scholar"
	"github.com/matzehuels/graphologue/pkg/llm"
	"github.com/matzehuels/graphologue/pkg/relation"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := stdout
	var buf bytes.Buffer
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// runCLI executes the root command with a config file pointing the cache
// at dir and no service credentials.
func runCLI(t *testing.T, dir string, args ...string) error {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("GRAPHOLOGUE_LAYOUT", "")

	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "[cache]\ndir = " + `"` + filepath.ToSlash(filepath.Join(dir, "cache")) + `"` + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"relations", "layout", "graph", "render", "papers", "explain", "serve", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "answer.txt", "answer"},
		{"", "dir/answer.txt", "dir/answer"},
		{"", "-", "graph"},
		{"out.svg", "answer.txt", "out"},
		{"out.dot", "answer.txt", "out"},
		{"out.png", "answer.txt", "out.png"},
		{"out", "answer.txt", "out"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"dot", []string{"dot"}},
		{"json,dot,svg", []string{"json", "dot", "svg"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "map")
	artifacts := map[string][]byte{"dot": []byte("digraph G {}"), "json": []byte("{}")}

	paths, err := writeArtifacts(base, []string{"json", "svg", "dot"}, artifacts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{base + ".json", base + ".dot"}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(base + ".dot")
	if err != nil || string(data) != "digraph G {}" {
		t.Errorf("dot file = %q, %v", data, err)
	}
}

func TestTripletsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	ts := []relation.Triplet{relation.New("cell", "contains", "nucleus")}

	if err := writeTriplets(ts, path); err != nil {
		t.Fatal(err)
	}
	got, err := readTriplets(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Strings() != ts[0].Strings() {
		t.Errorf("got %v, want %v", got, ts)
	}
}

func TestReadTripletsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[["only","two"]]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readTriplets(path); err == nil {
		t.Error("expected error for malformed triplet")
	}
}

func TestAuthorNames(t *testing.T) {
	authors := []scholar.Author{{Name: "Ada"}, {Name: "Grace"}, {Name: "Barbara"}, {Name: "Frances"}}

	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "Ada"},
		{3, "Ada, Grace, Barbara"},
		{4, "Ada, Grace, Barbara et al."},
	}
	for _, tt := range tests {
		if got := authorNames(authors[:tt.n]); got != tt.want {
			t.Errorf("authorNames(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrintStats(t *testing.T) {
	out := captureOutput(t)
	printStats(4, 3, true)
	printStats(0, 0, false)

	got := out.String()
	for _, want := range []string{"4 nodes", "3 edges", iconCached, "0 nodes", iconFresh} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestLayoutAndRenderCommands(t *testing.T) {
	dir := t.TempDir()
	captureOutput(t)

	input := filepath.Join(dir, "cell.triplets.json")
	ts := `[["cell","contains","nucleus"],["nucleus","stores","DNA"]]`
	if err := os.WriteFile(input, []byte(ts), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI(t, dir, "layout", input); err != nil {
		t.Fatalf("layout: %v", err)
	}
	graphPath := filepath.Join(dir, "cell.graph.json")
	doc, err := graph.ReadFile(graphPath)
	if err != nil {
		t.Fatalf("read layout output: %v", err)
	}
	if len(doc.Nodes) != 3 || len(doc.Edges) != 2 {
		t.Errorf("got %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	}

	if err := runCLI(t, dir, "render", "-f", "dot", graphPath); err != nil {
		t.Fatalf("render: %v", err)
	}
	dot, err := os.ReadFile(filepath.Join(dir, "cell.dot"))
	if err != nil {
		t.Fatalf("read render output: %v", err)
	}
	if !strings.Contains(string(dot), `"nucleus" -> "DNA"`) {
		t.Errorf("dot output missing edge:\n%s", dot)
	}
}

func TestLayoutCommandRejectsUnknownEngine(t *testing.T) {
	dir := t.TempDir()
	captureOutput(t)

	input := filepath.Join(dir, "t.json")
	if err := os.WriteFile(input, []byte(`[["a","b","c"]]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, dir, "layout", "-e", "circo", input); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestRelationsCommandWithoutAPIKey(t *testing.T) {
	dir := t.TempDir()
	out := captureOutput(t)

	input := filepath.Join(dir, "answer.txt")
	if err := os.WriteFile(input, []byte("Cells contain a nucleus."), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, dir, "relations", input); err != nil {
		t.Fatalf("relations: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "answer.triplets.json"))
	if err != nil {
		t.Fatal(err)
	}
	var ts []relation.Triplet
	if err := json.Unmarshal(data, &ts); err != nil {
		t.Fatal(err)
	}
	if ts == nil || len(ts) != 0 {
		t.Errorf("triplets = %v, want empty list", ts)
	}
	if !strings.Contains(out.String(), "No completion API key") {
		t.Errorf("missing warning in %q", out.String())
	}
}

// newTestCLI returns a CLI with the default config, a file cache under dir
// and the changes applied by edit.
func newTestCLI(t *testing.T, dir string, edit func(*config.Config)) *CLI {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	c.cfg = config.Default()
	c.cfg.Cache.Dir = filepath.Join(dir, "cache")
	if edit != nil {
		edit(&c.cfg)
	}
	return c
}

func TestRelationsCommandPlaceholderAnswer(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"text_completion","created":0,"model":"m",`+
			`"choices":[{"text":"a $$$ b $$$ c ###","index":0,"finish_reason":"stop","logprobs":null}]}`)
	}))
	defer srv.Close()

	for _, answer := range []string{llm.ResponseModelDown, llm.ResponseNoValidModelText, llm.ResponseNoValidResponse} {
		dir := t.TempDir()
		captureOutput(t)
		c := newTestCLI(t, dir, func(cfg *config.Config) {
			cfg.Completion.APIKey = "test"
			cfg.Completion.BaseURL = srv.URL + "/v1/"
		})

		input := filepath.Join(dir, "answer.txt")
		if err := os.WriteFile(input, []byte(answer+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := c.runRelations(context.Background(), input, "", false); err != nil {
			t.Fatalf("relations: %v", err)
		}

		ts, err := readTriplets(filepath.Join(dir, "answer.triplets.json"))
		if err != nil {
			t.Fatal(err)
		}
		if len(ts) != 0 {
			t.Errorf("triplets for %q = %v, want none", answer, ts)
		}
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("completion service called %d times, want 0", n)
	}
}

func TestNewRunnerScopesSearchKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(scholar.SearchResponse{
			Total: 1,
			Data:  []scholar.Paper{{PaperID: "p1", Title: "Cells"}},
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := newTestCLI(t, dir, func(cfg *config.Config) {
		cfg.Cache.Prefix = "team:"
		cfg.Scholar.BaseURL = srv.URL
		cfg.Scholar.RateLimit = 0
	})

	ctx := context.Background()
	runner, backend, err := c.newRunner(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	defer backend.Close()

	client, ok := runner.Scholar.(*scholar.Client)
	if !ok {
		t.Fatalf("Scholar = %T, want *scholar.Client", runner.Scholar)
	}
	if _, err := client.Search(ctx, "cells"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := backend.Get(ctx, "team:http:scholar:cells"); !hit {
		t.Error("search response not stored under the prefixed key")
	}
	if _, hit, _ := backend.Get(ctx, "http:scholar:cells"); hit {
		t.Error("search response stored under an unprefixed key")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	out := captureOutput(t)

	cacheDir := filepath.Join(dir, "cache")
	if err := runCLI(t, dir, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if !strings.Contains(out.String(), filepath.ToSlash(cacheDir)) {
		t.Errorf("cache path output = %q", out.String())
	}
	if err := os.MkdirAll(filepath.Join(cacheDir, "ab"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, "ab", "cdef.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI(t, dir, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 1 cached entries") {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(cacheDir, "ab", "cdef.json")); !os.IsNotExist(err) {
		t.Error("cache entry should be removed")
	}
}

func TestCompletionCommand(t *testing.T) {
	dir := t.TempDir()
	out := captureOutput(t)

	if err := runCLI(t, dir, "completion", "bash"); err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out.String(), "graphologue") {
		t.Error("completion script should mention the program name")
	}
	if err := runCLI(t, dir, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestCheckOutput(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"", false},
		{"-", false},
		{"out/map", false},
		{"bad\x00name", true},
	}
	for _, tt := range tests {
		if err := checkOutput(tt.path); (err != nil) != tt.wantErr {
			t.Errorf("checkOutput(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}
