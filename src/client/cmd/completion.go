package cmd

import (
	"github.com/spf13/cobra"

	"github.com/builtfast/vector-cli/src/client/api"
)

func (a *App) newCompletionCommand(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate a shell completion script",
		Long: `Generate a shell completion script.

Examples:
  source <(` + BinaryName + ` completion bash)
  ` + BinaryName + ` completion zsh > "${fpath[1]}/_` + BinaryName + `"
  ` + BinaryName + ` completion fish > ~/.config/fish/completions/` + BinaryName + `.fish`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			out := a.Out
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return api.Validationf("shell", "%q is not one of bash, zsh, fish, powershell", args[0])
		},
	}
}
