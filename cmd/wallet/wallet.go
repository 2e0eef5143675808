package wallet

import (
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/spf13/cobra"
)

const networkFlag = "network"

func New() *cobra.Command {
	return command.NewSubcommandGroup("wallet",
		newGenerate(),
		newRestore(),
		newReencrypt(),
	)
}
