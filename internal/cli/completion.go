package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for modgraph.

To load completions:

Bash:
  $ source <(modgraph completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ modgraph completion bash > /etc/bash_completion.d/modgraph
  # macOS:
  $ modgraph completion bash > $(brew --prefix)/etc/bash_completion.d/modgraph

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ modgraph completion zsh > "${fpath[1]}/_modgraph"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ modgraph completion fish | source

  # To load completions for each session, execute once:
  $ modgraph completion fish > ~/.config/fish/completions/modgraph.fish

PowerShell:
  PS> modgraph completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> modgraph completion powershell > modgraph.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
}
