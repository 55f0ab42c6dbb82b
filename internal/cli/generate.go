package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trinitycontents/reportgen/internal/assets"
	"github.com/trinitycontents/reportgen/internal/model"
	"github.com/trinitycontents/reportgen/internal/pipeline"
	"github.com/trinitycontents/reportgen/internal/placeholder"
	"github.com/trinitycontents/reportgen/internal/report"
)

var (
	inputPath  string
	imagesRoot string
	outputDir  string
	logFile    string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one inspection report document per claim row",
	Long: `Generate reads the claim dataset row by row and writes one Word
document per claim into the output folder:
- Claim fields missing from a row fall back to fixed defaults
- Header/footer/front/room photos are discovered under the images folder
- Missing photos are replaced with generated placeholder images
- A row that fails is logged and skipped; the batch always runs to the end

Example:
  reportgen generate --input claims.xlsx --images ./photos --output ./reports
  reportgen generate --input claims.csv --images ./photos --output ./reports -v`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&inputPath, "input", "", "claim dataset (.csv or .xlsx)")
	generateCmd.Flags().StringVar(&imagesRoot, "images", "", "images root folder")
	generateCmd.Flags().StringVar(&outputDir, "output", "", "output folder for generated reports")
	generateCmd.Flags().StringVar(&logFile, "log-file", "", "diagnostic log file (default: reportgen.log)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Build configuration: flags take priority, then config file, then defaults
	cfg := model.DefaultConfig()
	cfg.Input.Path = firstOf(inputPath, viper.GetString("input.path"))
	cfg.Assets.Root = firstOf(imagesRoot, viper.GetString("assets.root"))
	cfg.Output.Dir = firstOf(outputDir, viper.GetString("output.dir"), cfg.Output.Dir)
	cfg.Log.File = firstOf(logFile, viper.GetString("log.file"), cfg.Log.File)
	cfg.Output.Verbose = verbose

	logger, closeLog := newLogger(cfg)
	defer closeLog()
	ctx := logger.WithContext(context.Background())
	logger.Info().Msg("application started")

	// The placeholder synthesizer owns a temp directory for the run;
	// generated files are removed again on every exit path.
	synth, err := placeholder.NewSynthesizer()
	if err != nil {
		return fmt.Errorf("initialize placeholder synthesizer: %w", err)
	}
	defer func() {
		if err := synth.Close(); err != nil {
			logger.Error().Err(err).Msg("cleaning up placeholder images")
		}
	}()

	resolver := assets.NewResolver(cfg.Assets.Root)
	composer := report.NewComposer(resolver, synth, cfg.Output.Dir, report.NewDocxBuilder)
	generator := pipeline.NewGenerator(cfg, composer)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  First Inspection Report Generator\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:    %s\n", cfg.Input.Path)
	fmt.Fprintf(os.Stderr, "  Images folder: %s\n", cfg.Assets.Root)
	fmt.Fprintf(os.Stderr, "  Output folder: %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	result, err := generator.Run(ctx, func(p pipeline.Progress) {
		fmt.Fprintf(os.Stderr, "⚙️  Processing %d/%d: %s\n", p.Index, p.Total, p.Claim)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	for _, f := range result.Failures {
		fmt.Fprintf(os.Stderr, "✗ row %d (%s): %v\n", f.Index, f.Claim, f.Err)
	}

	fmt.Fprintln(os.Stderr, renderTally(result, cfg.Output.Dir))
	fmt.Fprintf(os.Stderr, "\nGenerated %d out of %d reports\n\n", result.Succeeded, result.Total)
	return nil
}

// newLogger wires the diagnostic log sink: an append-only log file, plus the
// console when verbose. When even the log file cannot be opened, logging
// degrades to stderr alone rather than failing the run.
func newLogger(cfg *model.Config) (zerolog.Logger, func()) {
	writers := []io.Writer{}
	closeLog := func() {}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v\n", cfg.Log.File, err)
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		closeLog = func() { _ = f.Close() }
		writers = append(writers, f)
		if cfg.Output.Verbose {
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return logger, closeLog
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
