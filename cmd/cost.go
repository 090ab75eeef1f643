package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/json-mapper/internal/config"
	"github.com/ziadkadry99/json-mapper/internal/proposal"
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Compare the estimated proposal cost across quality tiers",
	Long:  `Sizes the proposal prompt for the configured schema samples and prints the expected API cost for each quality tier without making any calls.`,
	RunE:  runCost,
}

func init() {
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	source, target, err := describeSchemas(cfg.SourceSchema, cfg.TargetSchema)
	if err != nil {
		return err
	}

	fmt.Println("Tier Comparison")
	fmt.Println("===============")
	for _, tier := range []config.QualityTier{config.QualityLite, config.QualityNormal, config.QualityMax} {
		model := config.ModelFor(cfg.Provider, tier)
		est := proposal.New(nil, model).Estimate(source, target)

		marker := " "
		if tier == cfg.Quality {
			marker = "*"
		}
		fmt.Printf("  %s %-8s  ~$%.4f  (model: %s, ~%d tokens)\n", marker, tier, est.CostUSD, model, est.InputTokens+est.OutputTokens)
	}
	fmt.Println()
	fmt.Println("  * = current quality tier")
	fmt.Printf("  Source fields: %d, target fields: %d\n", len(source), len(target))
	return nil
}
