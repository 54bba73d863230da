package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/genoviz/pkg/chart"
	gio "github.com/matzehuels/genoviz/pkg/io"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for genoviz.

To load completions:

Bash:
  $ source <(genoviz completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ genoviz completion bash > /etc/bash_completion.d/genoviz
  # macOS:
  $ genoviz completion bash > $(brew --prefix)/etc/bash_completion.d/genoviz

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ genoviz completion zsh > "${fpath[1]}/_genoviz"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ genoviz completion fish | source

  # To load completions for each session, execute once:
  $ genoviz completion fish > ~/.config/fish/completions/genoviz.fish

PowerShell:
  PS> genoviz completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> genoviz completion powershell > genoviz.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeKindAndFile completes the chart kind first, then an input file
// with an extension the kind can read.
func completeKindAndFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		var kinds []string
		for _, k := range chart.Kinds {
			if strings.HasPrefix(string(k), toComplete) {
				kinds = append(kinds, string(k))
			}
		}
		return kinds, cobra.ShellCompDirectiveNoFileComp
	case 1:
		return inputExtensions(), cobra.ShellCompDirectiveFilterFileExt
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// inputExtensions lists the input file extensions without the dot.
func inputExtensions() []string {
	exts := make([]string, 0, len(gio.Formats)+1)
	for _, f := range gio.Formats {
		exts = append(exts, string(f))
	}
	return append(exts, "txt")
}

// completeInputFile completes the single input file of a render command.
func completeInputFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return inputExtensions(), cobra.ShellCompDirectiveFilterFileExt
}
