package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
)

// completionCommand prints a shell completion script. Besides commands and
// flags, the scripts complete --style and --format values and
// inventory file names for 'stock import' and 'stock export'.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for barbell.

  bash:        source <(barbell completion bash)
  zsh:         barbell completion zsh > "${fpath[1]}/_barbell"
  fish:        barbell completion fish > ~/.config/fish/completions/barbell.fish
  powershell:  barbell completion powershell | Out-String | Invoke-Expression

Completion covers style names (barbell render --style <TAB>), output
formats, and .json/.toml/.yaml inventory files for 'barbell stock import'.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerFlagCompletions attaches value completion to the --style and
// --format flags of every command under root.
func registerFlagCompletions(root *cobra.Command) {
	var walk func(*cobra.Command)
	walk = func(cmd *cobra.Command) {
		if cmd.Flags().Lookup("style") != nil {
			_ = cmd.RegisterFlagCompletionFunc("style", fixedCompletion(styles.Names()))
		}
		if cmd.Flags().Lookup("format") != nil {
			valid := pipeline.ValidFormats
			if cmd.Name() == "trace" {
				valid = pipeline.ValidTraceFormats
			}
			_ = cmd.RegisterFlagCompletionFunc("format", formatCompletion(valid))
		}
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(root)
}

func fixedCompletion(values []string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// formatCompletion completes the last element of a comma-separated format
// list, offering only formats not already listed.
func formatCompletion(valid map[string]bool) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		done, prefix := "", toComplete
		if i := strings.LastIndexByte(toComplete, ','); i >= 0 {
			done, prefix = toComplete[:i+1], toComplete[i+1:]
		}
		listed := strings.Split(done, ",")

		var out []string
		for f := range valid {
			if strings.HasPrefix(f, prefix) && !slices.Contains(listed, f) {
				out = append(out, done+f)
			}
		}
		slices.Sort(out)
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}

// completeInventoryFiles restricts file completion to inventory formats.
func completeInventoryFiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}
