package root

import (
	"github.com/spf13/cobra"

	"github.com/arcana-network/secretrecovery/cmd/decode"
	"github.com/arcana-network/secretrecovery/cmd/recovercmd"
	"github.com/arcana-network/secretrecovery/cmd/version"
)

func GetRootCmd() *cobra.Command {

	var rootCmd = &cobra.Command{
		Use:           "secretrecovery",
		Short:         "Recovers polynomial secrets from redundant, possibly corrupted samples",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(recovercmd.GetCommand())
	rootCmd.AddCommand(decode.GetCommand())
	rootCmd.AddCommand(version.GetCommand())
	return rootCmd
}
