package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Scrin/pasta-frontend/internal/app"
	"github.com/Scrin/pasta-frontend/internal/logging"
	"github.com/Scrin/pasta-frontend/internal/logtail"
)

func newLogsCommand(flags *globalFlags) *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the editor log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(flags.options())
			if err != nil {
				return err
			}
			entries, err := logtail.Read(cfg.LogPath(), lines)
			if err != nil {
				return err
			}
			entries = logtail.Filter(entries, logging.ParseLevel(level))

			out := cmd.OutOrStdout()
			color := false
			if f, ok := out.(*os.File); ok {
				color = term.IsTerminal(int(f.Fd()))
			}
			return logtail.Render(out, entries, color)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 100, "number of lines to show (0 for all)")
	cmd.Flags().StringVarP(&level, "level", "l", "trace", "minimum level to show")
	return cmd
}
