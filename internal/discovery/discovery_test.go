package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%q) error = %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("int x;\n"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q) error = %v", path, err)
	}
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	var rels []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatalf("Rel(%q, %q) error = %v", root, f, err)
		}
		rels = append(rels, filepath.ToSlash(rel))
	}
	sort.Strings(rels)
	return rels
}

func TestListFilesFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.c")
	writeFile(t, root, "util.cpp")
	writeFile(t, root, "README.md")
	writeFile(t, root, "Makefile")
	writeFile(t, root, "sub/inner.h")

	files, err := ListFiles(root, []string{"c", "h", "cpp"}, nil)
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}

	want := []string{"main.c", "sub/inner.h", "util.cpp"}
	if got := relPaths(t, root, files); !reflect.DeepEqual(got, want) {
		t.Errorf("ListFiles() = %v, want %v", got, want)
	}
}

func TestListFilesExtensionCaseSensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lower.c")
	writeFile(t, root, "upper.C")

	files, err := ListFiles(root, []string{"c"}, nil)
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}

	want := []string{"lower.c"}
	if got := relPaths(t, root, files); !reflect.DeepEqual(got, want) {
		t.Errorf("ListFiles() = %v, want %v", got, want)
	}
}

func TestListFilesAppliesExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.c")
	writeFile(t, root, "third_party/vendor.c")
	writeFile(t, root, "third_party/deep/nested.c")
	writeFile(t, root, "gen_skip.c")

	files, err := ListFiles(root, []string{"c"}, []string{"third_party/*", "gen_*"})
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}

	want := []string{"keep.c"}
	if got := relPaths(t, root, files); !reflect.DeepEqual(got, want) {
		t.Errorf("ListFiles() = %v, want %v", got, want)
	}
}

func TestListFilesRejectsNonDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := ListFiles(missing, []string{"c"}, nil)
	if err == nil {
		t.Fatalf("ListFiles() on missing root: error = nil, want error")
	}
	if want := "No such folder: " + missing; err.Error() != want {
		t.Errorf("ListFiles() error = %q, want %q", err.Error(), want)
	}

	root := t.TempDir()
	writeFile(t, root, "plain.c")
	if _, err := ListFiles(filepath.Join(root, "plain.c"), []string{"c"}, nil); err == nil {
		t.Fatalf("ListFiles() on regular file: error = nil, want error")
	}
}

func TestFnmatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"literal match", "a/b.c", "a/b.c", true},
		{"literal mismatch", "a/b.c", "a/b.h", false},
		{"star crosses separators", "third_party/*", "third_party/deep/nested.c", true},
		{"star within segment", "*.c", "main.c", true},
		{"star matches path prefix too", "*.c", "sub/main.c", true},
		{"question mark", "a?.c", "ab.c", true},
		{"question mark no match", "a?.c", "abc.c", false},
		{"character class", "file[0-9].c", "file7.c", true},
		{"character class negated", "file[!0-9].c", "file7.c", false},
		{"regex metachars are literal", "a+b.c", "a+b.c", true},
		{"regex metachars do not repeat", "a+b.c", "aab.c", false},
		{"unterminated bracket is literal", "a[b.c", "a[b.c", true},
		{"class with leading close bracket", "a[]]b", "a]b", true},
		{"class with leading close bracket mismatch", "a[]]b", "axb", false},
		{"negated class with close bracket", "[!]].c", "x.c", true},
		{"negated class with close bracket excludes it", "[!]].c", "].c", false},
		{"empty negated class is literal", "[!]", "[!]", true},
		{"empty negated class matches nothing else", "[!]", "x", false},
		{"empty class is literal", "a[]b", "a[]b", true},
		{"leading caret is not negation", "[^a].c", "^.c", true},
		{"leading caret still matches listed char", "[^a].c", "a.c", true},
		{"leading caret rejects others", "[^a].c", "b.c", false},
		{"reversed range matches nothing", "[z-a].c", "m.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fnmatch(tt.pattern, tt.path); got != tt.want {
				t.Errorf("fnmatch(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestFnmatchSurvivesMalformedPattern(t *testing.T) {
	if fnmatch("[z-a].c", "m.c") {
		t.Errorf("fnmatch(%q, %q) = true, want false", "[z-a].c", "m.c")
	}
	// A pattern that fails to compile must not wedge the matcher for
	// everything that follows.
	if !fnmatch("*.c", "m.c") {
		t.Errorf("fnmatch(%q, %q) = false after a malformed pattern", "*.c", "m.c")
	}
	if fnmatch("[z-a].c", "m.c") {
		t.Errorf("fnmatch(%q, %q) = true on the cached path", "[z-a].c", "m.c")
	}
}

func TestListFilesMalformedExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.c")

	// A pattern the matcher cannot compile excludes nothing and must not
	// abort the walk.
	files, err := ListFiles(root, []string{"c"}, []string{"[z-a]"})
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	want := []string{"keep.c"}
	if got := relPaths(t, root, files); !reflect.DeepEqual(got, want) {
		t.Errorf("ListFiles() = %v, want %v", got, want)
	}
}

func TestExcludesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".clang-format-ignore")
	content := "# generated code\nthird_party/*\n\nbuild/*   \n# trailing comment\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	patterns, err := ExcludesFromFile(path)
	if err != nil {
		t.Fatalf("ExcludesFromFile() error = %v", err)
	}

	want := []string{"third_party/*", "build/*"}
	if !reflect.DeepEqual(patterns, want) {
		t.Errorf("ExcludesFromFile() = %v, want %v", patterns, want)
	}
}

func TestExcludesFromFileMissing(t *testing.T) {
	patterns, err := ExcludesFromFile(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("ExcludesFromFile() error = %v, want nil for missing file", err)
	}
	if patterns != nil {
		t.Errorf("ExcludesFromFile() = %v, want nil", patterns)
	}
}
