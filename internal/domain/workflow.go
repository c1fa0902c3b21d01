package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"golang.org/x/sync/errgroup"

	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/adapter"
	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/controller"
	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/schema"
)

// ScanArgs configures one scan run.
type ScanArgs struct {
	Paths   []m.Path
	Exclude []string
	// MaxFiles caps the number of files dispatched to workers; zero means
	// no cap.
	MaxFiles int
	Threads  int
	// Surfaces enables schema diffing when non-empty.
	Surfaces []schema.Surface
	// Patterns enables the schema-free lint pass.
	Patterns bool
	// Reports persists results under this directory when non-empty.
	Reports m.Path
}

// ScanResult aggregates everything a run produced.
type ScanResult struct {
	Files    int
	Blocks   []m.ExtractedBlock
	Models   []m.ModelDefinition
	Findings []m.Finding
}

// Workflow defines the scanning operations exposed to the commands.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) (*ScanResult, error)
}

type workflow struct {
	fs       adapter.SourceFSAdapter
	reports  adapter.ReportStore
	ui       controller.UI
	extract  *Extractor
	patterns *PatternValidator
}

// NewWorkflow creates a Workflow instance with the provided adapters.
func NewWorkflow(fs adapter.SourceFSAdapter, reports adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		fs:       fs,
		reports:  reports,
		ui:       ui,
		extract:  NewExtractor(),
		patterns: NewPatternValidator(),
	}
}

// Scan walks the roots, processes every candidate file through a bounded
// worker pool and returns deduplicated, sorted results.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) (*ScanResult, error) {
	files, err := w.fs.Get(args.Paths, args.Exclude)
	if err != nil {
		return nil, err
	}

	if args.MaxFiles > 0 && len(files) > args.MaxFiles {
		files = files[:args.MaxFiles]
	}

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	w.ui.ScanStarted(len(files), threads)

	res := &ScanResult{Files: len(files)}

	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for _, file := range files {
		file := file
		g.Go(func() error {
			src, err := w.fs.ReadFile(file)
			if err != nil {
				return nil //nolint:nilerr // Unreadable files are skipped.
			}

			fr := w.processFile(ctx, file, src, args)

			mu.Lock()
			res.Blocks = append(res.Blocks, fr.blocks...)
			res.Models = append(res.Models, fr.models...)
			res.Findings = append(res.Findings, fr.findings...)
			mu.Unlock()

			w.ui.FileScanned(file, len(fr.blocks))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Blocks = DedupeBlocks(res.Blocks)
	res.Models = DedupeModels(res.Models)
	res.Findings = DedupeFindings(res.Findings)

	if args.Reports != "" {
		if err := w.reports.SaveBlocks(args.Reports, res.Blocks); err != nil {
			return nil, fmt.Errorf("persist blocks: %w", err)
		}

		if err := w.reports.SaveFindings(args.Reports, res.Findings); err != nil {
			return nil, fmt.Errorf("persist findings: %w", err)
		}
	}

	return res, nil
}

type fileResult struct {
	blocks   []m.ExtractedBlock
	models   []m.ModelDefinition
	findings []m.Finding
}

// processFile runs extract, dedup, classify, diff and lint for one file.
func (w *workflow) processFile(ctx context.Context, file m.Path, src []byte, args ScanArgs) fileResult {
	var fr fileResult

	switch strings.ToLower(filepath.Ext(string(file))) {
	case ".graphql", ".gql":
		fr.blocks = ExtractDocument(file, src)
	default:
		fr.blocks, fr.models = w.extract.Extract(ctx, file, src)
	}

	fr.blocks = DedupeBlocks(fr.blocks)
	fr.models = DedupeModels(fr.models)

	var patternFindings []m.Finding

	if args.Patterns {
		for _, block := range fr.blocks {
			patternFindings = append(patternFindings, w.patterns.CheckOperation(block)...)
		}

		for _, def := range fr.models {
			patternFindings = append(patternFindings, w.patterns.CheckModel(def)...)
		}
	}

	var schemaFindings []m.Finding

	if len(args.Surfaces) > 0 {
		schemaFindings = w.diffBlocks(file, fr.blocks, args.Surfaces)
		patternFindings = SupersedeByLocation(patternFindings, schemaFindings)
	}

	fr.findings = append(schemaFindings, patternFindings...)

	return fr
}

// diffBlocks parses each block and walks it against its surface, or against
// every surface when classification is ambiguous. A first pass over the
// whole file collects fragment definitions so forward references resolve.
func (w *workflow) diffBlocks(file m.Path, blocks []m.ExtractedBlock, surfaces []schema.Surface) []m.Finding {
	type parsedBlock struct {
		block m.ExtractedBlock
		doc   *ast.QueryDocument
	}

	fragments := make(map[string]fragmentEntry)

	var parsed []parsedBlock

	for _, block := range blocks {
		if block.Kind == m.BlockUnknown {
			continue
		}

		doc, err := parser.ParseQuery(&ast.Source{Name: string(file), Input: block.Raw})
		if err != nil {
			continue
		}

		for _, frag := range doc.Fragments {
			if _, ok := fragments[frag.Name]; !ok {
				fragments[frag.Name] = fragmentEntry{def: frag, baseLine: block.StartLine}
			}
		}

		parsed = append(parsed, parsedBlock{block: block, doc: doc})
	}

	var findings []m.Finding

	for _, pb := range parsed {
		for _, op := range pb.doc.Operations {
			for _, sur := range surfacesFor(classifyOperation(op, surfaces), surfaces) {
				walker := newDiffWalker(file, pb.block.StartLine, sur, fragments)
				walker.WalkOperation(op)
				walker.CheckInputFields(op)

				findings = append(findings, walker.Findings()...)
			}
		}

		for _, frag := range pb.doc.Fragments {
			for _, sur := range surfacesFor(classifyFragment(frag, surfaces), surfaces) {
				walker := newDiffWalker(file, pb.block.StartLine, sur, fragments)
				walker.WalkFragment(frag)

				findings = append(findings, walker.Findings()...)
			}
		}
	}

	return DedupeFindings(findings)
}
