// Package pipeline drives input rows through map, encode, render and write
// with chunk-bounded parallelism. Chunks run strictly in sequence; rows
// inside a chunk run on a worker pool sized to the chunk, so peak resource
// use stays at one chunk's worth of in-flight matrices and images.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/segmentio/ksuid"

	"github.com/flarebyte/seshat-glyphs/internal/config"
	"github.com/flarebyte/seshat-glyphs/internal/encode"
	"github.com/flarebyte/seshat-glyphs/internal/mapscript"
	"github.com/flarebyte/seshat-glyphs/internal/render"
	"github.com/flarebyte/seshat-glyphs/internal/sink"
	"github.com/flarebyte/seshat-glyphs/internal/source"
)

// Pipeline holds the per-run collaborators. Everything except the sink is
// read-only once constructed; the sink serializes its own name claims.
type Pipeline struct {
	enc    encode.Encoder
	render render.Config
	sink   *sink.Sink
	mapper *mapscript.Mapper // nil without --map
	chunk  int
	skip   bool
	log    *slog.Logger
}

// New wires a pipeline from resolved configuration. log is the injected
// logging collaborator; pass a discard logger to silence it.
func New(cfg config.Resolved, log *slog.Logger) (*Pipeline, error) {
	snk, err := sink.New(cfg.Output, cfg.Render.Format.Ext())
	if err != nil {
		return nil, err
	}
	var mapper *mapscript.Mapper
	if cfg.MapScript != "" {
		mapper, err = mapscript.Load(cfg.MapScript)
		if err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		enc:    encode.New(cfg.Encoding),
		render: cfg.Render,
		sink:   snk,
		mapper: mapper,
		chunk:  cfg.ChunkSize,
		skip:   cfg.SkipHeader,
		log:    log,
	}, nil
}

// Run processes every input file in argument order and returns the
// aggregated report. Row failures never abort the run; an unreadable file is
// recorded on its FileResult and the remaining files still run.
func (p *Pipeline) Run(files []string) Report {
	rep := Report{RunID: ksuid.New().String()}
	p.log.Info("run start", "run", rep.RunID, "files", len(files), "chunk", p.chunk)
	for _, f := range files {
		rep.Files = append(rep.Files, p.processFile(f))
	}
	p.log.Info("run complete", "run", rep.RunID,
		"succeeded", rep.Succeeded(), "failed", rep.Failed())
	return rep
}

func (p *Pipeline) processFile(path string) FileResult {
	res := FileResult{File: path}
	r, closer, err := source.Open(path, p.skip)
	if err != nil {
		p.log.Error("input file unreadable", "file", path, "error", err)
		res.Err = err
		return res
	}
	defer closer.Close()

	for {
		rows := nextChunk(r, p.chunk)
		if len(rows) == 0 {
			break
		}
		outcomes := runIndexedParallel(len(rows), p.chunk, func(i int) Outcome {
			return p.processRow(rows[i])
		})
		for _, o := range outcomes {
			p.logOutcome(path, o)
		}
		res.Outcomes = append(res.Outcomes, outcomes...)
	}

	p.log.Info("file complete", "file", path,
		"rows", len(res.Outcomes), "succeeded", res.Succeeded(), "failed", res.Failed())
	return res
}

// processRow runs one row to its terminal outcome. Every stage error is
// captured here so a failing row never disturbs its siblings.
func (p *Pipeline) processRow(row source.Row) Outcome {
	out := Outcome{Label: row.Label, Line: row.Line}
	if row.Err != nil {
		out.Err = row.Err
		return out
	}

	label, payload := row.Label, row.Payload
	if p.mapper != nil {
		var err error
		label, payload, err = p.mapper.Apply(label, payload)
		if err != nil {
			out.Err = fmt.Errorf("line %d: %w", row.Line, err)
			return out
		}
		out.Label = label
	}

	matrix, err := p.enc.Encode(payload)
	if err != nil {
		out.Err = fmt.Errorf("line %d (%s): %w", row.Line, label, err)
		return out
	}
	img, err := render.Render(matrix, p.render)
	if err != nil {
		out.Err = fmt.Errorf("line %d (%s): render: %w", row.Line, label, err)
		return out
	}
	written, err := p.sink.Write(label, img)
	if err != nil {
		out.Err = fmt.Errorf("line %d (%s): %w", row.Line, label, err)
		return out
	}
	out.Path = written
	return out
}

func (p *Pipeline) logOutcome(file string, o Outcome) {
	if o.Failed() {
		p.log.Warn("row failed", "file", file, "line", o.Line, "label", o.Label, "reason", o.Reason())
		return
	}
	p.log.Debug("row succeeded", "file", file, "line", o.Line, "label", o.Label, "path", o.Path)
}

// nextChunk pulls up to size rows from r. A short or empty chunk marks the
// end of the file.
func nextChunk(r *source.Reader, size int) []source.Row {
	rows := make([]source.Row, 0, size)
	for len(rows) < size {
		row, ok := r.Next()
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	return rows
}
