package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Scrin/pasta-frontend/internal/backend"
	"github.com/Scrin/pasta-frontend/internal/paste"
)

func newGetCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|url>",
		Short: "Print a paste to stdout",
		Long: `Print the raw text of a paste to stdout. The remaining lifetime of the
paste is printed to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.openShared(cmd)
			if err != nil {
				return err
			}
			defer env.Close()
			return getPaste(cmd.Context(), env.Client, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// getPaste fetches body and metadata concurrently. A missing body fails the
// command; missing metadata only loses the expiry line.
func getPaste(ctx context.Context, svc backend.PasteService, location string, stdout, stderr io.Writer) error {
	id := paste.ParseLocation(location)
	if id == "" {
		return fmt.Errorf("%q is not a paste id or link", location)
	}

	var (
		body backend.Result[string]
		meta backend.Result[paste.Meta]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body = svc.GetPaste(gctx, id)
		return nil
	})
	g.Go(func() error {
		meta = svc.GetMeta(gctx, id)
		return nil
	})
	_ = g.Wait()

	switch body.Outcome {
	case backend.OutcomeOK:
	case backend.OutcomeNotFound:
		return fmt.Errorf("paste %s not found, either it never existed or it has expired", id)
	default:
		return fmt.Errorf("load paste %s: %w", id, body.Err)
	}

	if _, err := io.WriteString(stdout, body.Value); err != nil {
		return err
	}
	if meta.OK() && meta.Value.Expiry != nil {
		fmt.Fprintln(stderr, paste.FormatExpiry(*meta.Value.Expiry))
	}
	return nil
}
