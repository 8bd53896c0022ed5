package worker

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/sstrack/internal/llm"
	"github.com/ppiankov/sstrack/internal/logging"
	"github.com/ppiankov/sstrack/internal/pipeline"
)

// Assembler turns one document into a persisted record
type Assembler interface {
	Assemble(ctx context.Context, kind string, in pipeline.Input) (*pipeline.Result, error)
}

// Entry is one manifest line: kind,owner_id,path
type Entry struct {
	Line    int
	Kind    string
	OwnerID string
	Path    string
}

// IngestJob reads one document from disk and assembles it
type IngestJob struct {
	Entry     Entry
	Assembler Assembler
}

// Execute runs the job
func (j *IngestJob) Execute(ctx context.Context) Result {
	res := &IngestResult{Entry: j.Entry}

	doc, err := llm.ReadDocument(j.Entry.Path)
	if err != nil {
		res.Error = err
		return res
	}
	res.Record, res.Error = j.Assembler.Assemble(ctx, j.Entry.Kind, pipeline.Input{
		OwnerID:  j.Entry.OwnerID,
		Document: doc,
	})
	return res
}

// IngestResult is the outcome of one manifest entry
type IngestResult struct {
	Entry  Entry
	Record *pipeline.Result
	Error  error
}

// Err returns the ingestion error, if any
func (r *IngestResult) Err() error {
	return r.Error
}

// BatchProcessor ingests manifest entries concurrently
type BatchProcessor struct {
	assembler   Assembler
	concurrency int
	logger      *slog.Logger
}

// NewBatchProcessor creates a batch processor. A nil logger discards output.
func NewBatchProcessor(assembler Assembler, concurrency int, logger *slog.Logger) *BatchProcessor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &BatchProcessor{
		assembler:   assembler,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Process ingests entries and returns one result per entry in input order
func (b *BatchProcessor) Process(ctx context.Context, entries []Entry) []*IngestResult {
	if len(entries) == 0 {
		return []*IngestResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, e := range entries {
		if !pool.Submit(&IngestJob{Entry: e, Assembler: b.assembler}) {
			break
		}
	}

	results := pool.Wait()
	out := make([]*IngestResult, len(results))
	for i, r := range results {
		ir := r.(*IngestResult)
		out[i] = ir
		if ir.Error != nil {
			b.logger.ErrorContext(ctx, "ingest failed", "line", ir.Entry.Line, "kind", ir.Entry.Kind, "path", ir.Entry.Path, "error", ir.Error)
			continue
		}
		b.logger.InfoContext(ctx, "ingested", "line", ir.Entry.Line, "table", ir.Record.Table, "id", ir.Record.ID)
	}
	return out
}

// ProcessFile reads a manifest and ingests its entries
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*IngestResult, error) {
	entries, err := ReadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.Process(ctx, entries), nil
}

// ReadManifest reads a kind,owner_id,path manifest. Blank lines and lines
// starting with # are skipped, duplicate entries are dropped, and relative
// paths resolve against the manifest's directory.
func ReadManifest(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ParseManifest(file, filepath.Dir(path))
}

// ParseManifest parses manifest lines from r, resolving relative paths
// against baseDir.
func ParseManifest(r io.Reader, baseDir string) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	var entries []Entry
	seen := make(map[Entry]bool)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
		line, _ := reader.FieldPos(0)

		e := Entry{
			Kind:    strings.ToLower(strings.TrimSpace(record[0])),
			OwnerID: strings.TrimSpace(record[1]),
			Path:    strings.TrimSpace(record[2]),
		}
		if !validKind(e.Kind) {
			return nil, fmt.Errorf("manifest line %d: unknown kind %q", line, record[0])
		}
		if e.OwnerID == "" || e.Path == "" {
			return nil, fmt.Errorf("manifest line %d: owner id and path are required", line)
		}
		if !filepath.IsAbs(e.Path) && baseDir != "" {
			e.Path = filepath.Join(baseDir, e.Path)
		}

		if seen[e] {
			continue
		}
		seen[e] = true
		e.Line = line
		entries = append(entries, e)
	}
	return entries, nil
}

func validKind(kind string) bool {
	for _, k := range pipeline.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}
