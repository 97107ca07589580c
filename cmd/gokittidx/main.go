// Command gokittidx is a minimal index-builder CLI: it turns a
// newline-delimited JSON document corpus into an on-disk index directory
// cmd/gokittq can run queries against, and records the result in a small
// SQLite catalog. It is a fixture harness, not a production bulk-loader —
// index construction proper is out of scope for the evaluation core.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gokittidx",
		Short: "Build a fixture impact-ordered index from a JSON document corpus",
	}
	root.AddCommand(newBuildCmd())
	return root
}

func newBuildCmd() *cobra.Command {
	var (
		corpusPath string
		outDir     string
		catalogDSN string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an index directory from a newline-delimited JSON corpus",
		Example: `  gokittidx build --corpus docs.ndjson --out ./index --name demo
  gokittidx build --corpus docs.ndjson --out ./index --catalog ./catalog.db --name demo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := BuildIndex(corpusPath, outDir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "built index at %s: %d documents, %d terms\n",
				outDir, result.DocCount, result.TermCount)

			if catalogDSN == "" {
				return nil
			}

			cat, err := OpenCatalog(catalogDSN)
			if err != nil {
				return err
			}
			defer cat.Close()

			if name == "" {
				name = outDir
			}
			return cat.Record(name, outDir, result.DocCount, time.Now().Unix())
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "path to a newline-delimited JSON document corpus")
	cmd.Flags().StringVar(&outDir, "out", "./index", "output index directory")
	cmd.Flags().StringVar(&catalogDSN, "catalog", "", "optional SQLite catalog database to record the build in")
	cmd.Flags().StringVar(&name, "name", "", "catalog name for this index (defaults to --out)")
	cmd.MarkFlagRequired("corpus")

	return cmd
}
