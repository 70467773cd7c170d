package gen

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Output is the generated tree: relative output paths mapped to file
// contents, in emission order.
type Output struct {
	order []string
	files map[string][]byte
}

// NewOutput returns an empty output.
func NewOutput() *Output {
	return &Output{files: make(map[string][]byte)}
}

// Add records a file. Every path is emitted at most once per run.
func (o *Output) Add(path string, content []byte) error {
	path = filepath.ToSlash(path)
	if _, ok := o.files[path]; ok {
		return NewGenerationError("assemble", path, "path emitted twice", nil)
	}
	o.order = append(o.order, path)
	o.files[path] = content
	return nil
}

// Get returns the content of path.
func (o *Output) Get(path string) ([]byte, bool) {
	b, ok := o.files[path]
	return b, ok
}

// Paths returns every path in emission order.
func (o *Output) Paths() []string {
	return slices.Clone(o.order)
}

// Len returns the number of files.
func (o *Output) Len() int {
	return len(o.order)
}

// Merge adds every file of other.
func (o *Output) Merge(other *Output) error {
	for _, p := range other.order {
		if err := o.Add(p, other.files[p]); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the output as an object of path to source text,
// keeping emission order.
func (o *Output) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range o.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(string(o.files[p]))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ReadTree loads the generated Go files under dir, recognized by their
// leading Header comment. A missing dir yields an empty output.
func ReadTree(dir string) (*Output, error) {
	out := NewOutput()
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			if p == dir && os.IsNotExist(err) {
				return fs.SkipDir
			}
			return err
		case d.IsDir() || filepath.Ext(p) != ".go":
			return nil
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		if !isGenerated(content) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		return out.Add(rel, content)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func isGenerated(content []byte) bool {
	line, _, _ := bufio.NewReader(bytes.NewReader(content)).ReadLine()
	return strings.TrimSpace(string(line)) == "// "+Header
}

// DiffStatus classifies one entry of a Diff.
type DiffStatus uint8

const (
	Added DiffStatus = iota + 1
	Removed
	Changed
)

func (s DiffStatus) String() string {
	switch s {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// FileDiff is the difference of one file between two outputs.
type FileDiff struct {
	Path   string
	Status DiffStatus
	// Unified is a line diff of changed files.
	Unified string
}

// Diff compares the freshly generated output want with the tree on disk. It
// reports files missing on disk as Added, stale files as Removed and content
// mismatches as Changed, sorted by path.
func Diff(want, have *Output) ([]FileDiff, error) {
	var diffs []FileDiff
	for _, p := range want.order {
		old, ok := have.files[p]
		switch {
		case !ok:
			diffs = append(diffs, FileDiff{Path: p, Status: Added})
		case !bytes.Equal(old, want.files[p]):
			text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(old)),
				B:        difflib.SplitLines(string(want.files[p])),
				FromFile: p + " (on disk)",
				ToFile:   p + " (generated)",
				Context:  3,
			})
			if err != nil {
				return nil, err
			}
			diffs = append(diffs, FileDiff{Path: p, Status: Changed, Unified: text})
		}
	}
	for _, p := range have.order {
		if _, ok := want.files[p]; !ok {
			diffs = append(diffs, FileDiff{Path: p, Status: Removed})
		}
	}
	slices.SortFunc(diffs, func(a, b FileDiff) int { return strings.Compare(a.Path, b.Path) })
	return diffs, nil
}
