package settlement

import (
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("settlement",
		newFailed(),
		newRequeue(),
		newRun(),
	)
}
