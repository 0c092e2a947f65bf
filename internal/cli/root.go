package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Scrin/pasta-frontend/internal/app"
)

var (
	version = "dev"
	commit  = "unknown"
)

type globalFlags struct {
	configPath string
	profile    string
	backendURL string
	logLevel   string
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		Profile:    g.profile,
		BackendURL: g.backendURL,
		LogLevel:   g.logLevel,
	}
}

// open builds the shared environment for a subcommand, logging to its
// stderr.
func (g *globalFlags) open(cmd *cobra.Command) (*app.Env, error) {
	opts := g.options()
	opts.LogOutput = cmd.ErrOrStderr()
	return app.Open(opts)
}

// openShared is open for commands that only read: they still run while the
// editor holds the profile, without the stored secret.
func (g *globalFlags) openShared(cmd *cobra.Command) (*app.Env, error) {
	opts := g.options()
	opts.LogOutput = cmd.ErrOrStderr()
	opts.SharedDrafts = true
	return app.Open(opts)
}

// NewRootCommand returns the pasta command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "pasta [id|url]",
		Short: "Terminal client for the pasta pastebin",
		Long: `pasta edits and shares pastes on a pasta backend.

Without arguments it opens the editor on a new paste with the saved draft.
Given a paste id or share link it opens that paste.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			location := ""
			if len(args) == 1 {
				location = args[0]
			}
			return app.Run(cmd.Context(), flags.options(), location)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file path (default is ~/.config/pasta/config.toml)")
	pf.StringVarP(&flags.profile, "profile", "p", "", "draft profile name")
	pf.StringVar(&flags.backendURL, "backend", "", "backend address, e.g. http://127.0.0.1:8080")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newGetCommand(flags),
		newMetaCommand(flags),
		newPutCommand(flags),
		newLogsCommand(flags),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pasta: %v\n", err)
		return 1
	}
	return 0
}
