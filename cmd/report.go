package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/json-mapper/internal/mapping"
	"github.com/ziadkadry99/json-mapper/internal/report"
)

var (
	reportHTML    bool
	reportOut     string
	reportMapping string
	reportTitle   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the mapping document as a Markdown or HTML report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		doc, err := mapping.LoadFile(resolveMappingPath(cfg, reportMapping))
		if err != nil {
			return err
		}

		var out []byte
		if reportHTML {
			out, err = report.HTML(reportTitle, doc)
			if err != nil {
				return err
			}
		} else {
			out = []byte(report.Markdown(reportTitle, doc))
		}

		if reportOut == "" {
			_, err = os.Stdout.Write(out)
			return err
		}
		if err := os.WriteFile(reportOut, out, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportOut)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportHTML, "html", false, "render HTML instead of Markdown")
	reportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "write the report to a file instead of stdout")
	reportCmd.Flags().StringVarP(&reportMapping, "mapping", "m", "", "mapping document to report on")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "report title")
	rootCmd.AddCommand(reportCmd)
}
