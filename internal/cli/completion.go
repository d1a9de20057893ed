package cli

import (
	"fmt"

	"github.com/aryankumar/hvui/internal/config"
	"github.com/aryankumar/hvui/internal/harvester"
	"github.com/aryankumar/hvui/internal/output"
	"github.com/spf13/cobra"
)

// newCompletionCmd creates the completion command for generating shell completions
func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for hvui.

The completion script must be sourced to provide completions. After generating the
completion script, follow the instructions for your shell:

Bash:
  $ source <(hvui completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ hvui completion bash > /etc/bash_completion.d/hvui
  # macOS:
  $ hvui completion bash > $(brew --prefix)/etc/bash_completion.d/hvui

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ hvui completion zsh > "${fpath[1]}/_hvui"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ hvui completion fish | source

  # To load completions for each session, execute once:
  $ hvui completion fish > ~/.config/fish/completions/hvui.fish

PowerShell:
  PS> hvui completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> hvui completion powershell > hvui.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Skip parent's PersistentPreRunE (config loading) for completion command
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompletion(cmd, args[0])
		},
	}

	return cmd
}

// runCompletion generates the completion script for the specified shell
func runCompletion(cmd *cobra.Command, shell string) error {
	switch shell {
	case "bash":
		return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
	case "zsh":
		return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
	case "fish":
		return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unsupported shell type %q", shell)
	}
}

// registerFlagCompletions completes the persistent flags whose values hvui
// can enumerate without talking to Rancher
func registerFlagCompletions(root *cobra.Command) {
	_ = root.RegisterFlagCompletionFunc("context", completeContexts)
	_ = root.RegisterFlagCompletionFunc("output", fixedCompletions(
		string(output.FormatTable), string(output.FormatJSON), string(output.FormatYAML)))
	_ = root.RegisterFlagCompletionFunc("builtin-plugins", fixedCompletions(harvester.ProductName))
}

func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeContexts completes --context with the kubeconfig's contexts
func completeContexts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	path, _ := cmd.Flags().GetString("kubeconfig")
	contexts, err := config.NewKubeconfigLoader(path).GetContexts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return contexts, cobra.ShellCompDirectiveNoFileComp
}
