package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/json-mapper/internal/config"
	"github.com/ziadkadry99/json-mapper/internal/fields"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
	"github.com/ziadkadry99/json-mapper/internal/proposal"
)

var (
	proposeSource  string
	proposeTarget  string
	proposeOut     string
	proposeDryRun  bool
	proposeTimeout time.Duration
)

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Ask the LLM for an initial mapping document",
	Long: `Summarizes the fields of the source and target schema samples, asks the
configured LLM provider for candidate mappings and writes them as a mapping
document. Green and yellow candidates become mappings; red candidates become
mismatches unless their source field was already mapped.`,
	RunE: runPropose,
}

func init() {
	proposeCmd.Flags().StringVar(&proposeSource, "source", "", "source schema sample (default: source_schema from config)")
	proposeCmd.Flags().StringVar(&proposeTarget, "target", "", "target schema sample (default: target_schema from config)")
	proposeCmd.Flags().StringVarP(&proposeOut, "output", "o", "", "mapping document to write (default: mapping_file from config)")
	proposeCmd.Flags().BoolVar(&proposeDryRun, "dry-run", false, "estimate tokens and cost without calling the provider")
	proposeCmd.Flags().DurationVar(&proposeTimeout, "timeout", 5*time.Minute, "proposal request timeout")
	rootCmd.AddCommand(proposeCmd)
}

func runPropose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sourcePath := stringOr(proposeSource, cfg.SourceSchema)
	targetPath := stringOr(proposeTarget, cfg.TargetSchema)
	outPath := stringOr(proposeOut, cfg.MappingFile)

	source, target, err := describeSchemas(sourcePath, targetPath)
	if err != nil {
		return err
	}
	if len(source) == 0 {
		return fmt.Errorf("source schema %s has no fields", sourcePath)
	}

	est := proposal.New(nil, cfg.ResolvedModel()).Estimate(source, target)
	if proposeDryRun {
		printEstimate(cfg, est, len(source), len(target))
		return nil
	}
	if cfg.MaxCostUSD > 0 && est.CostUSD > cfg.MaxCostUSD {
		return fmt.Errorf("estimated cost $%.4f exceeds max_cost_usd $%.2f", est.CostUSD, cfg.MaxCostUSD)
	}

	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}
	proposer := proposal.New(provider, cfg.ResolvedModel())

	ctx, cancel := context.WithTimeout(context.Background(), proposeTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Proposing mappings for %d source fields with %s (%s)...\n", len(source), provider.Name(), est.Model)
	candidates, resp, err := proposer.Propose(ctx, source, target)
	switch {
	case errors.Is(err, proposal.ErrMalformedResponse):
		fmt.Fprintf(os.Stderr, "Warning: %v\nWriting an empty mapping document.\n", err)
		candidates = nil
	case err != nil:
		return err
	}
	if verbose && resp != nil {
		fmt.Fprintf(os.Stderr, "  tokens: %d in, %d out\n", resp.InputTokens, resp.OutputTokens)
	}

	doc := mapping.Separate(candidates)
	if err := mapping.WriteFile(outPath, doc); err != nil {
		return err
	}

	st := doc.Stats()
	fmt.Printf("Wrote %s: %d mappings, %d mismatches\n", outPath, st.Mappings, st.Mismatches)
	recordRun(cfg, mapping.Change{
		Op:      mapping.OpPropose,
		Path:    outPath,
		Summary: fmt.Sprintf("proposed %d mappings and %d mismatches from %s to %s", st.Mappings, st.Mismatches, sourcePath, targetPath),
		After:   st,
	})
	return nil
}

// describeSchemas reads both samples and summarizes their fields.
func describeSchemas(sourcePath, targetPath string) (source, target []fields.Field, err error) {
	sourceDoc, err := readDocument(sourcePath)
	if err != nil {
		return nil, nil, err
	}
	targetDoc, err := readDocument(targetPath)
	if err != nil {
		return nil, nil, err
	}
	return fields.Describe(sourceDoc), fields.Describe(targetDoc), nil
}

func printEstimate(cfg *config.Config, est proposal.Estimate, sourceFields, targetFields int) {
	fmt.Println("Proposal Estimate")
	fmt.Println("=================")
	fmt.Printf("  Source fields:     %d\n", sourceFields)
	fmt.Printf("  Target fields:     %d\n", targetFields)
	fmt.Printf("  Input tokens:      ~%d\n", est.InputTokens)
	fmt.Printf("  Output tokens:     ~%d\n", est.OutputTokens)
	fmt.Printf("  Estimated cost:    $%.4f\n", est.CostUSD)
	fmt.Println()
	fmt.Printf("  Provider: %s\n", cfg.Provider)
	fmt.Printf("  Model:    %s\n", est.Model)
	if cfg.MaxCostUSD > 0 && est.CostUSD > cfg.MaxCostUSD {
		fmt.Printf("\n  Exceeds max_cost_usd ($%.2f); propose would refuse to run.\n", cfg.MaxCostUSD)
	}
}

func stringOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
