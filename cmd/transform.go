package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/json-mapper/internal/config"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
	"github.com/ziadkadry99/json-mapper/internal/progress"
	"github.com/ziadkadry99/json-mapper/internal/transform"
	"github.com/ziadkadry99/json-mapper/internal/walker"
)

var (
	transformInput   string
	transformOutput  string
	transformMapping string
	transformExclude []string
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Rewrite source records into the target shape",
	Long: `Applies a mapping document to every record under the container key of the
input batch and writes the target-shaped batch.

A single input file is written to --output. A directory or glob pattern
(for example 'data/**/*.json') transforms every match concurrently, and
--output names the directory that mirrors the input layout.

Without --mapping, the revised mapping document is used when it exists,
otherwise the proposed one.`,
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVarP(&transformInput, "input", "i", "", "input batch, directory or glob (default: input_file from config)")
	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "", "output file, or directory for several inputs (default: output_file from config)")
	transformCmd.Flags().StringVarP(&transformMapping, "mapping", "m", "", "mapping document to apply")
	transformCmd.Flags().StringSliceVar(&transformExclude, "exclude", nil, "glob patterns of inputs to skip")
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mappingPath := resolveMappingPath(cfg, transformMapping)
	doc, err := mapping.LoadFile(mappingPath)
	if err != nil {
		return err
	}
	engine := transform.New(doc)

	input := stringOr(transformInput, cfg.InputFile)
	output := stringOr(transformOutput, cfg.OutputFile)

	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		n, err := engine.RunFile(input, output, cfg.ContainerKey)
		if err != nil {
			return err
		}
		fmt.Printf("Transformed %d records from %s into %s\n", n, input, output)
		recordTransform(cfg, mappingPath, output, 1, n)
		return nil
	}

	files, err := walker.Walk(walker.Config{Patterns: []string{input}, Exclude: transformExclude})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files match %s", input)
	}
	if strings.HasSuffix(output, ".json") {
		return fmt.Errorf("output %s must be a directory when transforming several inputs", output)
	}

	total, err := transformFiles(cmd.Context(), engine, files, output, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Transformed %d records from %d files into %s\n", total, len(files), output)
	recordTransform(cfg, mappingPath, output, len(files), total)
	return nil
}

// transformFiles runs the engine over files with at most max_concurrency
// in flight and returns the total record count.
func transformFiles(ctx context.Context, engine *transform.Engine, files []walker.FileInfo, outDir string, cfg *config.Config) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)
	if cfg.MaxConcurrency > 0 {
		g.SetLimit(cfg.MaxConcurrency)
	}

	reporter := progress.NewReporter()
	reporter.Start(len(files))

	var (
		mu    sync.Mutex
		done  int
		total int
	)
	for _, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := engine.RunFile(f.Path, walker.OutputPath(outDir, f), cfg.ContainerKey)
			if err != nil {
				return fmt.Errorf("%s: %w", f.RelPath, err)
			}

			mu.Lock()
			defer mu.Unlock()
			done++
			total += n
			reporter.Update(done, f.RelPath)
			return nil
		})
	}

	err := g.Wait()
	reporter.Finish()
	return total, err
}

// resolveMappingPath picks the explicit path, then the revised document
// when it exists, then the proposed one.
func resolveMappingPath(cfg *config.Config, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(cfg.RevisedMappingFile); err == nil {
		return cfg.RevisedMappingFile
	}
	return cfg.MappingFile
}

func recordTransform(cfg *config.Config, mappingPath, output string, files, records int) {
	recordRun(cfg, mapping.Change{
		Op:      mapping.OpTransform,
		Path:    output,
		Summary: fmt.Sprintf("transformed %d records from %d files with %s", records, files, mappingPath),
		After:   map[string]any{"files": files, "records": records, "mapping": mappingPath},
	})
}
