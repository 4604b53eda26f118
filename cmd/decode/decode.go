package decode

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcana-network/secretrecovery/common"
)

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <base> <value>",
		Short: "Prints the decimal value of a digit string in the given base",
		Args:  cobra.ExactArgs(2),
		RunE:  runCommand,
	}

	return cmd
}

func runCommand(cmd *cobra.Command, args []string) error {
	base, err := common.ParseBase(args[0])
	if err != nil {
		return err
	}
	value, err := common.DecodeValue(base, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value.String())
	return nil
}
