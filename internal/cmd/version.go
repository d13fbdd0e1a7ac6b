package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flexfitapp/flexfit/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.GetInfo()

		f, err := env.formatter()
		if err != nil {
			return err
		}
		if env.format == "text" || env.format == "" {
			return f.Format(info.String())
		}
		return f.Format(info)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
