package cmd

import (
	"fmt"

	"parity-check/core/config"
	"parity-check/core/reconcile"
	"parity-check/feature/check"
	"parity-check/feature/objects"

	"github.com/spf13/cobra"
)

// diffReport is printed by diff --json.
type diffReport struct {
	RDS      check.SourceReport `json:"rds"`
	Redshift check.SourceReport `json:"redshift"`
	Result   *reconcile.Result  `json:"result"`
}

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <rds-folder> <redshift-folder>",
	Short: "Compare two folders of already downloaded exports",
	Long: `Loads every file below both folders and compares their lines without touching
RDS, Redshift or S3. Useful to re-check the data of an earlier run.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		inject, _ := cmd.Flags().GetBool("inject-sentinels")

		cfg, err := config.LoadConfig(".", configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := newLogger(&cfg.Log)
		if err != nil {
			return err
		}
		defer logg.Sync()

		rds, rdsLines, err := loadFolder(args[0])
		if err != nil {
			return err
		}
		redshift, redshiftLines, err := loadFolder(args[1])
		if err != nil {
			return err
		}

		result := check.Compare(logg, rdsLines, redshiftLines, reconcile.Options{InjectSentinels: inject})

		if jsonOutput {
			if err := writeJSON(cmd, diffReport{RDS: rds, Redshift: redshift, Result: result}); err != nil {
				return err
			}
		}
		return result.Err()
	},
}

func loadFolder(folder string) (check.SourceReport, []string, error) {
	report := check.SourceReport{Folder: folder}

	files, err := objects.LocalFiles(folder)
	if err != nil {
		return report, nil, err
	}
	report.Files = files

	lines, err := objects.LoadLines(files)
	if err != nil {
		return report, nil, err
	}
	report.Lines = len(lines)

	return report, lines, nil
}

func init() {
	RootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Bool("json", false, "print the result as JSON")
	diffCmd.Flags().Bool("inject-sentinels", false, "add a marker row to each side and verify it is reported")
}
