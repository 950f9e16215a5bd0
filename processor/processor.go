// Package processor assembles a complete acta workbook from a request.
package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/orayew2002/acta-excel/assets"
	"github.com/orayew2002/acta-excel/corrector"
	"github.com/orayew2002/acta-excel/domain"
	"github.com/orayew2002/acta-excel/sheet"
	"github.com/orayew2002/acta-excel/template"
	"github.com/orayew2002/acta-excel/xlsx"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds one generation when Config leaves it unset.
const DefaultTimeout = 180 * time.Second

// Corrector rewrites photo captions. Implementations must return the input
// batch when they cannot correct it.
type Corrector interface {
	Correct(ctx context.Context, batch corrector.Batch) corrector.Batch
}

// Config configures a Processor.
type Config struct {
	// Timeout bounds one generation, caption correction included.
	Timeout time.Duration
	// Workers bounds how many sheets are laid out at once; 0 is unbounded.
	Workers int
	// LogoPath is printed on every sheet; empty leaves the logo out.
	LogoPath string
	// Categories are the conformity sheets, in output order. Nil means
	// domain.Categories.
	Categories []domain.Category
}

// Result describes a written workbook.
type Result struct {
	FilePath string
	// Sheets are the requested sheet names in workbook order.
	Sheets []string
	// Instances is the number of blocks stamped per conformity sheet.
	Instances map[string]int
}

// Processor turns requests into workbooks.
type Processor struct {
	cfg       Config
	corrector Corrector
	writer    *xlsx.Writer
	logger    zerolog.Logger
}

// New creates a Processor. A nil corrector keeps the captions as sent.
func New(cfg Config, c Corrector, logger zerolog.Logger) *Processor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Categories == nil {
		cfg.Categories = domain.Categories
	}
	return &Processor{
		cfg:       cfg,
		corrector: c,
		writer:    xlsx.NewWriter(logger),
		logger:    logger,
	}
}

// Generate builds the summary sheet, one conformity sheet per category and
// the measurements sheet, and saves them next to the project photos. Nothing
// is written when generation fails or times out.
func (p *Processor) Generate(ctx context.Context, req domain.Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, &Error{Kind: KindInvalidInput, Err: err}
	}
	if err := checkDir(req.URI); err != nil {
		return Result{}, &Error{Kind: KindNotFound, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	log := p.logger.With().Str("uri", req.URI).Logger()
	start := time.Now()
	log.Info().Int("services", len(req.Services)).Msg("generation started")

	p.warnUnknownServices(log, req)

	corrected := req.CommentBatch()
	if p.corrector != nil {
		corrected = p.corrector.Correct(ctx, corrected)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, classify(err)
	}

	reg, instances, err := p.registry(req, corrected, log)
	if err != nil {
		return Result{}, &Error{Kind: KindGeneration, Err: err}
	}

	sheets, err := reg.BuildAll(ctx, p.cfg.Workers)
	if err != nil {
		return Result{}, classify(err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, classify(err)
	}

	path := filepath.Join(req.URI, xlsx.FileName(req.ProjectCode(), req.URI))
	if err := p.writer.WriteFile(path, sheets); err != nil {
		return Result{}, &Error{Kind: KindGeneration, Err: err}
	}

	log.Info().
		Str("path", path).
		Int("sheets", len(sheets)).
		Dur("took", time.Since(start)).
		Msg("generation finished")

	return Result{FilePath: path, Sheets: reg.Names(), Instances: instances.snapshot()}, nil
}

// registry registers every sheet of the document in output order.
func (p *Processor) registry(req domain.Request, corrected corrector.Batch, log zerolog.Logger) (*template.Registry, *counter, error) {
	stamper, err := template.NewStamper(template.ConformityTemplate(), p.cfg.LogoPath, log)
	if err != nil {
		return nil, nil, err
	}

	data := req.Fields()
	images := assets.NewResolver(req.URI)
	instances := &counter{n: make(map[string]int, len(p.cfg.Categories))}

	reg := template.New()
	reg.Register(template.SummarySheetName, func(ctx context.Context, s *sheet.Sheet) error {
		return template.BuildSummary(ctx, s, data, p.cfg.LogoPath, log)
	})
	for _, cat := range p.cfg.Categories {
		reg.Register(cat.Name, func(ctx context.Context, s *sheet.Sheet) error {
			svc, _ := req.Service(cat.Name)
			svc.Name = cat.Name
			items := domain.Flatten(svc, corrected[cat.Name], images, log)
			n, err := stamper.StampAll(ctx, s, data, cat.Title, items)
			instances.set(cat.Name, n)
			return err
		})
	}
	reg.Register(template.MeasurementsSheetName, func(ctx context.Context, s *sheet.Sheet) error {
		return template.BuildMeasurements(ctx, s, data, p.cfg.LogoPath, log)
	})
	return reg, instances, nil
}

func (p *Processor) warnUnknownServices(log zerolog.Logger, req domain.Request) {
	known := make(map[string]bool, len(p.cfg.Categories))
	for _, c := range p.cfg.Categories {
		known[c.Name] = true
	}
	for _, s := range req.Services {
		if !known[s.Name] {
			log.Warn().Str("service", s.Name).Msg("no conformity sheet for service, skipped")
		}
	}
}

func checkDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("project folder: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("project folder %s is not a directory", path)
	}
	return nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindGeneration, Err: err}
}

// counter collects per-sheet instance counts from concurrent builders.
type counter struct {
	mu sync.Mutex
	n  map[string]int
}

func (c *counter) set(name string, n int) {
	c.mu.Lock()
	c.n[name] = n
	c.mu.Unlock()
}

func (c *counter) snapshot() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.n))
	for k, v := range c.n {
		out[k] = v
	}
	return out
}
