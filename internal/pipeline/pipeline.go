// Package pipeline drives one batch run: read the claim dataset once, then
// compose one report per row, tolerating individual row failures.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/trinitycontents/reportgen/internal/dataset"
	"github.com/trinitycontents/reportgen/internal/model"
)

// ErrMissingInputs is returned when one of the three required paths (input
// file, images root, output directory) was not supplied. No rows are
// processed in that case.
var ErrMissingInputs = errors.New("input file, images folder and output folder must all be selected")

// Composer builds and saves the report for a single claim.
type Composer interface {
	Compose(ctx context.Context, claim model.ClaimRecord) (string, error)
}

// Progress describes the row currently being processed.
type Progress struct {
	Index int // 1-based
	Total int
	Claim string
}

// Failure records one skipped row.
type Failure struct {
	Index int
	Claim string
	Err   error
}

// Result is the final tally of a batch run.
type Result struct {
	Succeeded int
	Total     int
	Failures  []Failure
}

// Generator iterates the dataset and composes one report per row.
type Generator struct {
	cfg      *model.Config
	composer Composer
}

// NewGenerator creates a batch driver over the given composer.
func NewGenerator(cfg *model.Config, composer Composer) *Generator {
	return &Generator{cfg: cfg, composer: composer}
}

// Run processes every row of the dataset in order. A row that fails to
// compose is logged, counted as a failure and skipped; the batch never
// aborts on a single row. onProgress, when non-nil, is invoked before each
// row.
func (g *Generator) Run(ctx context.Context, onProgress func(Progress)) (Result, error) {
	log := zerolog.Ctx(ctx)

	if g.cfg.Input.Path == "" || g.cfg.Assets.Root == "" || g.cfg.Output.Dir == "" {
		return Result{}, ErrMissingInputs
	}

	if err := os.MkdirAll(g.cfg.Output.Dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	log.Info().Str("input", g.cfg.Input.Path).Msg("reading input file")
	claims, err := dataset.Read(g.cfg.Input.Path)
	if err != nil {
		return Result{}, fmt.Errorf("read dataset: %w", err)
	}

	result := Result{Total: len(claims)}
	for i, claim := range claims {
		if onProgress != nil {
			onProgress(Progress{Index: i + 1, Total: len(claims), Claim: claim.ClaimNumber()})
		}

		path, err := g.composer.Compose(ctx, claim)
		if err != nil {
			log.Error().Err(err).Int("row", i+1).Str("claim", claim.ClaimNumber()).Msg("report generation failed")
			result.Failures = append(result.Failures, Failure{Index: i + 1, Claim: claim.ClaimNumber(), Err: err})
			continue
		}

		result.Succeeded++
		log.Info().Str("claim", claim.ClaimNumber()).Str("path", path).Msg("saved report")
	}

	log.Info().Int("succeeded", result.Succeeded).Int("total", result.Total).Msg("batch complete")
	return result, nil
}
