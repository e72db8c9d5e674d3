package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/validation"
)

const skipNoText = "no text extracted"

type Extractor interface {
	Extract(path string) (*extract.Result, error)
}

type Classifier interface {
	Classify(ctx context.Context, text string) (ai.Judgment, error)
}

type Validator interface {
	Validate(text string, j ai.Judgment) (ai.Judgment, []validation.Demotion)
}

// Deps aggregates the stages every document passes through.
type Deps struct {
	Extractor  Extractor
	Classifier Classifier
	Validator  Validator
	Logger     *zap.Logger
}

type Config struct {
	// Workers bounds the number of documents processed at once. Values below
	// two mean sequential processing in listing order.
	Workers int
}

// Result is what Process learned about one document.
type Result struct {
	Outcome   report.Outcome
	Extract   *extract.Result
	Demotions []validation.Demotion
}

type Pipeline struct {
	deps    Deps
	workers int
	logger  *zap.Logger
}

func New(cfg Config, deps Deps) *Pipeline {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Pipeline{
		deps:    deps,
		workers: workers,
		logger:  logger.WithFields(deps.Logger),
	}
}

// Process runs extraction, classification and validation for one document.
// It never fails the run: every problem becomes a Skipped or Failed outcome.
func (p *Pipeline) Process(ctx context.Context, doc *document.Document) Result {
	extracted, err := p.deps.Extractor.Extract(doc.Path)
	if err != nil {
		return Result{Outcome: report.Failed(doc, fmt.Errorf("extract text: %w", err))}
	}

	if strings.TrimSpace(extracted.Text) == "" {
		return Result{Outcome: report.Skipped(doc, skipNoText), Extract: extracted}
	}

	judgment, err := p.deps.Classifier.Classify(ctx, extracted.Text)
	if err != nil {
		return Result{Outcome: report.Failed(doc, fmt.Errorf("classify: %w", err)), Extract: extracted}
	}

	validated, demotions := p.deps.Validator.Validate(extracted.Text, judgment)

	rec := &report.CandidateRecord{
		Name:       doc.Name,
		SourcePath: doc.Path,
		Judgment:   validated,
		Links:      extracted.Links,
	}

	return Result{
		Outcome:   report.Recorded(doc, rec),
		Extract:   extracted,
		Demotions: demotions,
	}
}

// Run screens all documents and returns the aggregated report with rows in
// listing order, also when documents finish out of order. A cancelled context
// stops dispatching new documents; the report then holds what finished.
func (p *Pipeline) Run(ctx context.Context, docs *document.Documents) (*report.RunReport, error) {
	agg := report.NewAggregator()

	if p.workers == 1 {
		for _, doc := range docs.Items {
			if err := ctx.Err(); err != nil {
				return agg.Report(), err
			}
			p.screen(ctx, agg, doc)
		}
		return agg.Report(), nil
	}

	jobs := make(chan *document.Document)
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				p.screen(ctx, agg, doc)
			}
		}()
	}

	var err error
dispatch:
	for _, doc := range docs.Items {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case jobs <- doc:
		}
	}
	close(jobs)
	wg.Wait()

	rep := agg.Report()
	rep.RestoreOrder(docs.Paths())
	return rep, err
}

func (p *Pipeline) screen(ctx context.Context, agg *report.Aggregator, doc *document.Document) {
	p.logger.Info("processing document", zap.String(logger.FieldDocument, doc.FileName()))
	p.handle(agg, doc, p.Process(ctx, doc))
}

// handle logs the outcome of one document and hands it to the aggregator.
func (p *Pipeline) handle(agg *report.Aggregator, doc *document.Document, res Result) {
	log := p.logger.With(zap.String(logger.FieldDocument, doc.FileName()))

	if res.Extract != nil && res.Extract.CoverLetter {
		log.Debug("skipped cover letter page", zap.Int("pages", res.Extract.Pages))
	}

	switch res.Outcome.Kind {
	case report.OutcomeSkipped:
		log.Info("document skipped", zap.String("reason", res.Outcome.Reason))
	case report.OutcomeFailed:
		log.Warn("document failed. It will be skipped.", zap.Error(res.Outcome.Err))
	case report.OutcomeRecorded:
		for _, d := range res.Demotions {
			log.Info("verdict demoted by validation",
				zap.String("criterion", string(d.Criterion)),
				zap.String("rule", d.Rule),
			)
		}

		j := res.Outcome.Record.Judgment
		log.Info("candidate screened",
			zap.String("summary", j.Summary),
			zap.String(string(ai.CriterionReactNative), logger.Mark(j.ReactNative)),
			zap.String(string(ai.CriterionSignalProcessing), logger.Mark(j.SignalProcessing)),
			zap.String(string(ai.CriterionBiomedical), logger.Mark(j.Biomedical)),
		)
	}

	agg.Add(res.Outcome)
}
