// Command gokittq is the query-evaluation CLI: it opens an on-disk index,
// parses a query string, runs the impact evaluator, and prints the
// ranked top-k results. Kept intentionally small, with no subcommand
// tree, matching the flat main() shape of the teacher's own cmd/ entries.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	hackos "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"

	"github.com/gokitt/impactq/internal/accum"
	"github.com/gokitt/impactq/internal/config"
	"github.com/gokitt/impactq/internal/evaluator"
	"github.com/gokitt/impactq/internal/obslog"
	"github.com/gokitt/impactq/pkg/impactidx"
	"github.com/gokitt/impactq/pkg/query"
	"github.com/gokitt/impactq/pkg/ranker"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath   string
		dropStop     bool
		indexDirFlag string
		topKFlag     int
		accLimitFlag int
		scratchFlag  int64
		logLevelFlag string
		embeddings   string
		queryVector  string
		blendAlpha   float64
	)

	cmd := &cobra.Command{
		Use:   "gokittq [query terms...]",
		Short: "Run one impact-ordered query against an on-disk index",
		Example: `  gokittq --index-dir ./index climate change
  gokittq --index-dir ./index "exact phrase" and more terms`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, err := obslog.New(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer logger.Sync()

			idx, err := impactidx.Load(cfg.IndexDir)
			if err != nil {
				return fmt.Errorf("load index: %w", err)
			}
			defer idx.Files.Close()

			rawQuery := strings.Join(args, " ")
			q := query.Parse(rawQuery)
			if dropStop {
				query.DropStopwords(q)
			}

			acc := accum.New(cfg.AccLimit)
			logger.Info("evaluating query", obslog.QueryFields(rawQuery, len(q.Terms), cfg.AccLimit, cfg.ScratchBudget)...)

			if err := evaluator.Evaluate(context.Background(), idx, q, acc, cfg.AccLimit, cfg.ScratchBudget); err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}

			results := ranker.Rank(idx, acc, cfg.TopK)

			if embeddings != "" && queryVector != "" {
				vec, err := parseVector(queryVector)
				if err != nil {
					return fmt.Errorf("parse query vector: %w", err)
				}

				fs, err := hackos.NewFS()
				if err != nil {
					return fmt.Errorf("open embeddings filesystem: %w", err)
				}
				store, err := ranker.NewHybridStore(fs, embeddings)
				if err != nil {
					return fmt.Errorf("open embedding store: %w", err)
				}
				results = store.Blend(results, vec, blendAlpha)
			}

			for i, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%d.\tdoc=%d\tscore=%d\t%s\n", i+1, r.DocNo, r.Score, r.AuxString)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "optional config file (yaml/toml/json, per viper)")
	cmd.Flags().BoolVar(&dropStop, "drop-stopwords", false, "remove English stop words from the query before evaluation")
	cmd.Flags().StringVar(&indexDirFlag, "index-dir", "", "index directory (overrides config/env)")
	cmd.Flags().IntVar(&accLimitFlag, "acc-limit", 0, "accumulator soft capacity (overrides config/env)")
	cmd.Flags().Int64Var(&scratchFlag, "scratch-budget", 0, "scratch byte budget for posting-list sources (overrides config/env)")
	cmd.Flags().IntVar(&topKFlag, "top-k", 0, "number of results to print (overrides config/env)")
	cmd.Flags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error (overrides config/env)")
	cmd.Flags().StringVar(&embeddings, "embeddings", "", "path to an embedding store saved by ranker.HybridStore (enables hybrid re-ranking)")
	cmd.Flags().StringVar(&queryVector, "query-vector", "", "comma-separated query embedding, required alongside --embeddings")
	cmd.Flags().Float64Var(&blendAlpha, "blend-alpha", 0.5, "weight given to the impact score vs. embedding similarity when blending, in [0,1]")

	return cmd
}

// parseVector parses a comma-separated list of floats into a query
// embedding for HybridStore.Blend.
func parseVector(s string) ([]float32, error) {
	parts := strings.Split(s, ",")
	vec := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("component %d (%q): %w", i, p, err)
		}
		vec[i] = float32(f)
	}
	return vec, nil
}
