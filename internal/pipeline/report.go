package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Report summarizes one run across all input files.
type Report struct {
	RunID string
	Files []FileResult
}

// Succeeded counts successful rows across all files.
func (r Report) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		n += f.Succeeded()
	}
	return n
}

// Failed counts failed rows across all files.
func (r Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		n += f.Failed()
	}
	return n
}

// FileErrors reports whether any input file failed wholesale (unreadable
// path). Row-scoped failures do not count.
func (r Report) FileErrors() bool {
	for _, f := range r.Files {
		if f.Err != nil {
			return true
		}
	}
	return false
}

// Marshal returns canonical YAML bytes for the run report. Key order is
// fixed and per-file failure reasons are sorted so the document is stable
// regardless of worker completion order.
func (r Report) Marshal() ([]byte, error) {
	top := &yaml.Node{Kind: yaml.MappingNode}
	top.Content = append(top.Content, scalarNode("run"), scalarFrom(r.RunID))

	files := &yaml.Node{Kind: yaml.SequenceNode}
	for _, f := range r.Files {
		fn := &yaml.Node{Kind: yaml.MappingNode}
		fn.Content = append(fn.Content, scalarNode("file"), scalarFrom(f.File))
		if f.Err != nil {
			fn.Content = append(fn.Content, scalarNode("error"), scalarFrom(f.Err.Error()))
		}
		fn.Content = append(fn.Content, scalarNode("rows"), scalarFrom(len(f.Outcomes)))
		fn.Content = append(fn.Content, scalarNode("succeeded"), scalarFrom(f.Succeeded()))
		fn.Content = append(fn.Content, scalarNode("failed"), scalarFrom(f.Failed()))

		reasons := make([]string, 0, len(f.Outcomes))
		for _, o := range f.Outcomes {
			if o.Failed() {
				reasons = append(reasons, o.Reason())
			}
		}
		if len(reasons) > 0 {
			sort.Strings(reasons)
			seq := &yaml.Node{Kind: yaml.SequenceNode}
			for _, reason := range reasons {
				seq.Content = append(seq.Content, scalarFrom(reason))
			}
			fn.Content = append(fn.Content, scalarNode("failures"), seq)
		}
		files.Content = append(files.Content, fn)
	}
	top.Content = append(top.Content, scalarNode("files"), files)

	totals := &yaml.Node{Kind: yaml.MappingNode}
	totals.Content = append(totals.Content, scalarNode("succeeded"), scalarFrom(r.Succeeded()))
	totals.Content = append(totals.Content, scalarNode("failed"), scalarFrom(r.Failed()))
	top.Content = append(top.Content, scalarNode("totals"), totals)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	out = append(out, '\n')
	return out, nil
}

// Write writes the YAML report to path, creating parent directories.
func (r Report) Write(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := r.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func scalarFrom(v any) *yaml.Node {
	n := &yaml.Node{}
	_ = n.Encode(v)
	return n
}
