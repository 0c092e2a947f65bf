package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Scrin/pasta-frontend/internal/backend"
	"github.com/Scrin/pasta-frontend/internal/paste"
	"github.com/Scrin/pasta-frontend/internal/prefs"
)

type putFlags struct {
	mime      string
	expiry    string
	overwrite string
}

func newPutCommand(flags *globalFlags) *cobra.Command {
	pf := &putFlags{}
	cmd := &cobra.Command{
		Use:   "put [file]",
		Short: "Save a file or piped input as a paste",
		Long: `Save a file, or standard input when no file (or "-") is given, and print
the share link. The ownership secret is stored in the profile, so the paste
can later be overwritten from the editor or with --overwrite.`,
		Example: `  pasta put main.go --mime text/x-go
  git diff | pasta put --mime text/x-diff --expiry 1d
  pasta put notes.txt --overwrite abc12345`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			expiry, err := resolveExpiry(pf.expiry)
			if err != nil {
				return err
			}

			env, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			req := backend.SaveRequest{
				Mime:   strings.TrimSpace(pf.mime),
				Expiry: expiry,
			}
			if pf.overwrite != "" {
				req.ID = paste.ParseLocation(pf.overwrite)
				if req.ID == "" {
					return fmt.Errorf("%q is not a paste id or link", pf.overwrite)
				}
			}
			return putPaste(cmd.Context(), env.Client, in, req, env.Config.ShareBase(), cmd.OutOrStdout(), env.Log)
		},
	}
	cmd.Flags().StringVarP(&pf.mime, "mime", "m", paste.DefaultMode, "MIME type of the paste")
	cmd.Flags().StringVarP(&pf.expiry, "expiry", "e", "", "lifetime, e.g. 300, 1h, 7d or 1y (default from prefs)")
	cmd.Flags().StringVar(&pf.overwrite, "overwrite", "", "id or link of an owned paste to replace")
	return cmd
}

// openInput returns the file named in args or stdin. An interactive
// terminal on stdin is refused rather than waiting for input.
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, nil, errors.New("refusing to read a paste from the terminal; pass a file or pipe input")
	}
	return in, func() {}, nil
}

// resolveExpiry parses a lifetime flag. Empty uses the preferred expiry.
func resolveExpiry(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p, _ := prefs.Load("")
		return p.Expiry, nil
	}
	seconds, err := parseExpiry(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid expiry %q: %w", raw, err)
	}
	return seconds, nil
}

func parseExpiry(raw string) (int64, error) {
	var seconds int64
	switch {
	case strings.HasSuffix(raw, "d"), strings.HasSuffix(raw, "y"):
		n, err := strconv.ParseInt(raw[:len(raw)-1], 10, 64)
		if err != nil {
			return 0, err
		}
		unit := int64(86400)
		if strings.HasSuffix(raw, "y") {
			unit = 31536000
		}
		seconds = n * unit
	default:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			seconds = n
			break
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return 0, err
		}
		seconds = int64(d / time.Second)
	}
	if seconds <= 0 {
		return 0, errors.New("must be at least one second")
	}
	return seconds, nil
}

func putPaste(ctx context.Context, svc backend.PasteService, in io.Reader, req backend.SaveRequest, shareBase string, out io.Writer, log zerolog.Logger) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(data) == 0 {
		return errors.New("nothing to save: input is empty")
	}
	req.Text = string(data)
	if req.Mime == "" {
		req.Mime = paste.DefaultMode
	}
	if _, ok := paste.LookupMode(req.Mime); !ok {
		log.Warn().Str("mime", req.Mime).Msg("mime type has no editor mode")
	}

	meta, err := svc.SavePaste(ctx, req)
	if err != nil {
		return fmt.Errorf("save failed: %s", strings.Join(backend.SaveErrors(err), "; "))
	}
	log.Debug().Str("id", meta.ID).Int64("expiry", meta.Expiry).Msg("paste saved")
	fmt.Fprintln(out, paste.ShareURL(shareBase, meta.ID))
	return nil
}
