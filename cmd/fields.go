package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/json-mapper/internal/confidence"
	"github.com/ziadkadry99/json-mapper/internal/fields"
)

var fieldsSummary bool

var fieldsCmd = &cobra.Command{
	Use:   "fields <file.json>",
	Short: "List the field paths of a JSON document with inferred types",
	Long: `Flattens a JSON document into dot-separated leaf paths and prints the
inferred type tag and confidence of each. With --summary, prints the
(path, kind) pairs sent to the proposal step instead, including
intermediate objects and arrays.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()

		if fieldsSummary {
			fmt.Fprintln(w, "PATH\tKIND")
			for _, f := range fields.Describe(doc) {
				fmt.Fprintf(w, "%s\t%s\n", f.Path, f.Kind)
			}
			return nil
		}

		fmt.Fprintln(w, "PATH\tTYPE\tCONFIDENCE")
		for _, p := range fields.Flatten(doc, "") {
			typ := fields.InferType(doc, p)
			fmt.Fprintf(w, "%s\t%s\t%s\n", p, typ, confidence.Classify(typ))
		}
		return nil
	},
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsSummary, "summary", false, "print (path, kind) pairs including intermediate nodes")
	rootCmd.AddCommand(fieldsCmd)
}
