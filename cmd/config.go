package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/ksnavely/dmp/internal/config"
	"github.com/ksnavely/dmp/internal/rank"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set dmp configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "dmp_file: %s\n", c.DMPFile)
		fmt.Fprintf(out, "total_taken_file: %s\n", c.TakenFile)
		fmt.Fprintf(out, "too_far_regions: %s\n", strings.Join(c.TooFarRegions, ","))
		fmt.Fprintf(out, "exclusions: %s\n", strings.Join(c.Exclusions, ","))
		fmt.Fprintf(out, "exclude_pp_req: %t\n", c.ExcludePPReq)
		fmt.Fprintf(out, "max_dmps_per_sq_mile: %g\n", c.MaxDMPsPerSqMile)
		fmt.Fprintf(out, "top_n: %d\n", c.TopN)
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		switch key {
		case "dmp_file":
			c.DMPFile = val
		case "total_taken_file":
			c.TakenFile = val
		case "too_far_regions":
			c.TooFarRegions = splitList(val)
		case "exclusions":
			c.Exclusions = splitList(val)
		case "exclude_pp_req":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for exclude_pp_req: %v", val)
			}
			c.ExcludePPReq = b
		case "max_dmps_per_sq_mile":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for max_dmps_per_sq_mile: %v", val)
			}
			c.MaxDMPsPerSqMile = f
		case "top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for top_n: %v", val)
			}
			c.TopN = i
		case "output_format":
			f, err := rank.ParseFormat(val)
			if err != nil {
				return err
			}
			c.OutputFormat = f
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// splitList parses a comma-separated list; an empty value clears it.
func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
