package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	sqmerrors "github.com/DarthSidM/sqm-project/internal/errors"
	"github.com/DarthSidM/sqm-project/internal/tokenizer"
)

const sampleJS = `function add(a, b) { return helper(a) + b; }
function helper(x) { return x * 2; }
class Shape { area() { return 0; } }
class Square extends Shape { area() { return 1; } }
`

const sampleTest = `const sum = add(1, 2);
expect(sum).toBe(3);
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func regexEngine(opts Options) *Engine {
	return NewEngine(tokenizer.New(nil, nil), nil, opts)
}

// failingSource reads from disk except for paths in fail.
type failingSource struct {
	fail map[string]bool
}

func (s failingSource) Read(_ context.Context, location string) (string, error) {
	if s.fail[filepath.Base(location)] {
		return "", errors.New("permission denied")
	}
	data, err := os.ReadFile(location)
	return string(data), err
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][2]string
	stores  int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][2]string{}}
}

func (c *memCache) LookupFile(_ context.Context, path, fingerprint string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok || e[0] != fingerprint {
		return nil, false, nil
	}
	return []byte(e[1]), true, nil
}

func (c *memCache) StoreFile(_ context.Context, path, fingerprint string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = [2]string{fingerprint, string(data)}
	c.stores++
	return nil
}

func TestMeasure(t *testing.T) {
	e := regexEngine(Options{})

	fm, err := e.Measure(context.Background(), "sample.js", sampleJS)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	if fm.Mode != tokenizer.ModeRegex {
		t.Errorf("Mode = %q, want %q", fm.Mode, tokenizer.ModeRegex)
	}
	if len(fm.Operators) == 0 || len(fm.Operands) == 0 {
		t.Errorf("expected operators and operands, got %d/%d", len(fm.Operators), len(fm.Operands))
	}

	if len(fm.Functions) != 2 {
		t.Fatalf("Functions = %d, want 2", len(fm.Functions))
	}
	add, helper := fm.Functions[0], fm.Functions[1]
	if add.Name != "add" || add.FanOut != 1 || add.FanIn != 0 {
		t.Errorf("add = %+v", add)
	}
	if helper.Name != "helper" || helper.FanIn != 1 || helper.FanOut != 0 {
		t.Errorf("helper = %+v", helper)
	}

	if fm.Size.LOC != 4 {
		t.Errorf("LOC = %d, want 4", fm.Size.LOC)
	}
	if fm.OO.TotalClasses != 2 || fm.OO.TotalMethods != 2 || fm.OO.MaxInheritanceDepth != 2 {
		t.Errorf("OO = %+v", fm.OO)
	}
}

func TestAnalyzeFile_Unreadable(t *testing.T) {
	e := regexEngine(Options{Source: failingSource{fail: map[string]bool{"a.js": true}}})

	res := e.AnalyzeFile(context.Background(), "a.js")
	if res.Metrics != nil {
		t.Error("Metrics should be nil on failure")
	}
	if code := sqmerrors.CodeOf(res.Err); code != sqmerrors.FileUnreadable {
		t.Errorf("code = %s, want %s", code, sqmerrors.FileUnreadable)
	}
}

func TestRun_Report(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/math.js":             sampleJS,
		"src/math.test.js":        sampleTest,
		"src/node_modules/lib.js": sampleJS,
		"src/README.md":           "# not source",
	})

	res, err := regexEngine(Options{Workers: 2}).Run(context.Background(), []string{filepath.Join(root, "src")})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(res.Paths) != 2 {
		t.Fatalf("Paths = %v, want 2 files", res.Paths)
	}
	r := res.Report
	if r.FileCount != 2 || r.Analyzed != 2 || len(r.Skipped) != 0 {
		t.Errorf("counts = %d/%d/%v", r.FileCount, r.Analyzed, r.Skipped)
	}
	if r.Testing.TestFiles != 1 || r.Testing.SourceFiles != 1 || r.Testing.TestToSourceRatio != 1 {
		t.Errorf("Testing = %+v", r.Testing)
	}
	if r.OO.TotalClasses != 2 {
		t.Errorf("TotalClasses = %d, want 2", r.OO.TotalClasses)
	}
	if r.Size.TotalLOC != 6 {
		t.Errorf("TotalLOC = %d, want 6", r.Size.TotalLOC)
	}
	if r.Halstead.Vocabulary == 0 {
		t.Error("expected a non-empty vocabulary")
	}
}

func TestRun_SkippedFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": sampleJS,
		"b.js": sampleJS,
	})

	e := regexEngine(Options{Source: failingSource{fail: map[string]bool{"b.js": true}}})
	res, err := e.Run(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	r := res.Report
	if r.FileCount != 2 || r.Analyzed != 1 {
		t.Errorf("FileCount/Analyzed = %d/%d, want 2/1", r.FileCount, r.Analyzed)
	}
	if len(r.Skipped) != 1 || filepath.Base(r.Skipped[0]) != "b.js" {
		t.Errorf("Skipped = %v", r.Skipped)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != sqmerrors.FileUnreadable {
		t.Errorf("Diagnostics = %+v", res.Diagnostics)
	}
}

func TestRun_NoResult(t *testing.T) {
	ctx := context.Background()
	e := regexEngine(Options{})

	tests := []struct {
		name string
		dirs func(t *testing.T) []string
		want sqmerrors.ErrorCode
	}{
		{
			name: "no valid directories",
			dirs: func(t *testing.T) []string { return []string{filepath.Join(t.TempDir(), "missing")} },
			want: sqmerrors.NoValidDirectories,
		},
		{
			name: "no source files",
			dirs: func(t *testing.T) []string {
				return []string{writeTree(t, map[string]string{"notes.txt": "x"})}
			},
			want: sqmerrors.NoFilesFound,
		},
		{
			name: "empty sources",
			dirs: func(t *testing.T) []string {
				return []string{writeTree(t, map[string]string{"empty.js": "", "blank.ts": "\n\n"})}
			},
			want: sqmerrors.NoMetrics,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Run(ctx, tt.dirs(t))
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := sqmerrors.CodeOf(err); code != tt.want {
				t.Errorf("code = %s, want %s", code, tt.want)
			}
			if res == nil || res.Report != nil {
				t.Error("expected a result without a report")
			}
		})
	}
}

func TestRun_WorkerCountDoesNotChangeReport(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a.js", "b.ts", "c.jsx", "d.tsx", "e.test.js", "nested/f.js"} {
		files[name] = sampleJS
	}
	root := writeTree(t, files)
	ctx := context.Background()

	seq, err := regexEngine(Options{Workers: 1}).Run(ctx, []string{root})
	if err != nil {
		t.Fatal(err)
	}
	par, err := regexEngine(Options{Workers: 8}).Run(ctx, []string{root})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(seq.Report, par.Report) {
		t.Errorf("reports differ:\nseq=%+v\npar=%+v", seq.Report, par.Report)
	}
}

func TestRun_Cache(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": sampleJS,
		"b.js": sampleTest,
	})
	ctx := context.Background()
	cache := newMemCache()
	e := regexEngine(Options{Cache: cache})

	first, err := e.Run(ctx, []string{root})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHits != 0 || cache.stores != 2 {
		t.Errorf("first run: hits=%d stores=%d", first.CacheHits, cache.stores)
	}

	second, err := e.Run(ctx, []string{root})
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheHits != 2 {
		t.Errorf("second run: hits=%d, want 2", second.CacheHits)
	}
	if !reflect.DeepEqual(first.Report, second.Report) {
		t.Errorf("cached report differs:\nfirst=%+v\nsecond=%+v", first.Report, second.Report)
	}

	if err := os.WriteFile(filepath.Join(root, "a.js"), []byte("let changed = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	third, err := e.Run(ctx, []string{root})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHits != 1 {
		t.Errorf("after edit: hits=%d, want 1", third.CacheHits)
	}
}

func TestRun_Cancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": sampleJS})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := regexEngine(Options{}).Run(ctx, []string{root}); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
