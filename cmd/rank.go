package cmd

import (
	"bytes"
	"fmt"

	"github.com/ksnavely/dmp/internal/rank"
	"github.com/ksnavely/dmp/internal/utils"
	"github.com/spf13/cobra"
)

var (
	rankDMPFile   string
	rankTakenFile string
	rankDataDir   string
	rankTop       int
	rankExcludePP bool
	rankFormat    string
	rankOutPath   string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Join, filter, score and print the ranked WMU reports",
	Example: `  # Rank using dmp.csv and total_taken.csv in the current directory
  dmp rank

  # Drop units that need preference points and show the top 5 as Markdown
  dmp rank --exclude-pp-req --top 5 -o markdown`,
	Args: cobra.NoArgs,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
	addRankFlags(rankCmd)
}

func addRankFlags(c *cobra.Command) {
	c.Flags().StringVar(&rankDMPFile, "dmp", "", "permit statistics table (overrides config dmp_file)")
	c.Flags().StringVar(&rankTakenFile, "taken", "", "harvest totals table (overrides config total_taken_file)")
	c.Flags().StringVar(&rankDataDir, "data-dir", "", "directory holding relative input files (default: working directory)")
	c.Flags().IntVar(&rankTop, "top", 0, "rows per report (overrides config top_n)")
	c.Flags().BoolVar(&rankExcludePP, "exclude-pp-req", false, "drop units whose resident odds are PP_REQ")
	c.Flags().StringVarP(&rankFormat, "output", "o", "", "output format: table|markdown|csv|json|yaml")
	c.Flags().StringVar(&rankOutPath, "out", "", "write the reports to this file instead of stdout")
}

func runRank(cmd *cobra.Command, _ []string) error {
	c, err := currentConfig()
	if err != nil {
		return err
	}
	opt := rank.DefaultOptions()
	opt.DMPFile = c.DMPFile
	opt.TakenFile = c.TakenFile
	opt.Rules = rank.Rules{
		TooFarRegions: c.TooFarRegions,
		Exclusions:    c.Exclusions,
		ExcludePPReq:  c.ExcludePPReq,
	}
	opt.Score.CapPerSqMile = c.MaxDMPsPerSqMile
	opt.Top = c.TopN
	format := c.OutputFormat

	f := cmd.Flags()
	if f.Changed("dmp") {
		opt.DMPFile = rankDMPFile
	}
	if f.Changed("taken") {
		opt.TakenFile = rankTakenFile
	}
	if f.Changed("top") {
		if rankTop <= 0 {
			return fmt.Errorf("--top must be positive, got %d", rankTop)
		}
		opt.Top = rankTop
	}
	if f.Changed("exclude-pp-req") {
		opt.Rules.ExcludePPReq = rankExcludePP
	}
	if f.Changed("output") {
		format = rankFormat
	}
	format, err = rank.ParseFormat(format)
	if err != nil {
		return err
	}
	opt.DMPFile = utils.ResolveInput(rankDataDir, opt.DMPFile)
	opt.TakenFile = utils.ResolveInput(rankDataDir, opt.TakenFile)
	opt.Logger = newLogger()

	res, err := rank.Process(opt)
	if err != nil {
		return err
	}

	if rankOutPath == "" {
		return rank.Render(cmd.OutOrStdout(), res, format)
	}
	var buf bytes.Buffer
	if err := rank.Render(&buf, res, format); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(rankOutPath, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d reports for %d units to %s\n", len(res.Reports), len(res.Scored.Units), rankOutPath)
	return nil
}
