package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brendan.keane/imdburl/internal/cli"
	"github.com/brendan.keane/imdburl/internal/config"
	"github.com/brendan.keane/imdburl/pkg/errors"
	"github.com/brendan.keane/imdburl/internal/logger"
	"github.com/brendan.keane/imdburl/pkg/imdb"
)

// log is replaced once flags are parsed
var log = logger.InitLogger(nil)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Debug().Fields(errors.DebugInfo(err)).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imdburl",
		Short: "Build IMDb advanced title search URLs",
		Long: `imdburl turns a YAML query file and command line filters into an IMDb
advanced title search URL and prints it on stdout.

The query file defaults to config/search_query.yml. Flags override the
values from the file; --config - reads the query from stdin.`,
		Example: `  imdburl -c queries/noir.yml
  imdburl --genre film-noir --start-date 1940-01-01 --end-date 1959-12-31
  imdburl --genre comedy --country "United Kingdom" --sort-type user_rating --sort-option desc --explain`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewBuildHandler(log).Execute(cmd, args)
		},
	}

	config.RegisterGlobalFlags(rootCmd.PersistentFlags())
	config.RegisterBuildFlags(rootCmd.Flags())

	// Register completion functions
	// Slice flags also accept comma separated values
	for flag, catalog := range map[string]struct {
		values func() []string
		valid  func(string) bool
	}{
		config.FlagGenre:        {imdb.ValidGenres, imdb.IsValidGenre},
		config.FlagExcludeGenre: {imdb.ValidGenres, imdb.IsValidGenre},
		config.FlagTitleType:    {imdb.ValidTitleTypes, imdb.IsValidTitleType},
	} {
		rootCmd.RegisterFlagCompletionFunc(flag, listCompletion(catalog.values, catalog.valid))
	}
	for flag, values := range map[string]func() []string{
		config.FlagSortType:       imdb.ValidSortTypes,
		config.FlagSortOption:     imdb.ValidSortOptions,
		config.FlagCountry:        imdb.CountryNames,
		config.FlagExcludeCountry: imdb.CountryNames,
		config.FlagLogFormat:      func() []string { return []string{"pretty", "json"} },
	} {
		rootCmd.RegisterFlagCompletionFunc(flag, fixedCompletion(values))
	}
	rootCmd.MarkFlagFilename(config.FlagConfig, "yml", "yaml")
	rootCmd.MarkPersistentFlagFilename(config.FlagEnvFile)

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(generateCompletionCmd())

	return rootCmd
}

// setup loads the configuration for the running command and configures logging
func setup(cmd *cobra.Command, args []string) error {
	load := config.LoadGlobalFromFlags
	if cmd.Flags().Lookup(config.FlagConfig) != nil {
		load = config.LoadFromFlags
	}

	cfg, err := load(cmd.Flags())
	if err != nil {
		return err
	}

	log = logger.Setup(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.WithCaller)
	log.Debug().Str("command", cmd.Name()).Msg("configuration loaded")

	cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
	return nil
}

func newListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:       "list [kind]",
		Short:     "List accepted filter values",
		Long:      "Without an argument, list the value kinds. Countries are printed with their codes.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: imdb.CatalogKinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewListHandler(log).Execute(cmd, args)
		},
	}
	listCmd.Flags().Bool("styled", false, "Render a styled listing")
	return listCmd
}

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the URL builder as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewMCPHandler(log).Execute(cmd, args)
		},
	}
}

// Completion functions

func fixedCompletion(values func() []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values(), cobra.ShellCompDirectiveNoFileComp
	}
}

// listCompletion completes the last element of a comma separated list once
// every earlier element is a known value
func listCompletion(values func() []string, valid func(string) bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		i := strings.LastIndex(toComplete, ",")
		if i < 0 {
			return values(), cobra.ShellCompDirectiveNoFileComp
		}

		done := toComplete[:i+1]
		for _, v := range strings.Split(toComplete[:i], ",") {
			if !valid(v) {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
		}

		var completions []string
		for _, v := range values() {
			completions = append(completions, done+v)
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

func generateCompletionCmd() *cobra.Command {
	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

Bash:

  # Load for current session:
  $ source <(imdburl completion bash)

  # Load for all sessions (add to ~/.bashrc):
  $ echo 'source <(imdburl completion bash)' >> ~/.bashrc

Zsh:

  # Load for current session:
  $ source <(imdburl completion zsh)

  # Load for all sessions (add to ~/.zshrc):
  $ echo 'source <(imdburl completion zsh)' >> ~/.zshrc

Fish:

  # Load for current session:
  $ imdburl completion fish | source

  # Load for all sessions:
  $ imdburl completion fish > ~/.config/fish/completions/imdburl.fish

PowerShell:

  # Load for current session:
  PS> imdburl completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}

	return completionCmd
}
