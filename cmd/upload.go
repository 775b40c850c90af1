package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/company-intake/internal/ingest"
	"github.com/sells-group/company-intake/internal/intake"
)

var (
	uploadFile   string
	uploadMode   string
	uploadDryRun bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Clean a CSV/XLSX company list and upsert it into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := applyCountryAliases(); err != nil {
			return err
		}

		modeStr := uploadMode
		if modeStr == "" {
			modeStr = cfg.Enrich.Mode
		}
		mode, err := intake.ParseMode(modeStr)
		if err != nil {
			return err
		}

		rows, err := ingest.ParseFile(uploadFile)
		if err != nil {
			return err
		}
		zap.L().Info("file parsed",
			zap.String("file", uploadFile),
			zap.Int("rows", len(rows)),
			zap.String("mode", string(mode)),
		)

		proc, err := newProcessor(mode)
		if err != nil {
			return err
		}

		records, stats, err := proc.Process(ctx, rows)
		if err != nil {
			return err
		}

		if !uploadDryRun {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Migrate(ctx); err != nil {
				return err
			}
			if _, err := st.UpsertCompanies(ctx, records); err != nil {
				return eris.Wrap(err, "upsert companies")
			}
		}

		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal stats")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "CSV or XLSX file to process (required)")
	uploadCmd.Flags().StringVarP(&uploadMode, "mode", "m", "", "cleaning mode: deterministic, ai, or hybrid (default from config)")
	uploadCmd.Flags().BoolVar(&uploadDryRun, "dry-run", false, "clean only, do not write to the store")
	_ = uploadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(uploadCmd)
}
