package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/Scrin/pasta-frontend/internal/backend"
	"github.com/Scrin/pasta-frontend/internal/paste"
)

// metaView is the printed form of paste metadata. The secret is never
// printed; Owned says whether the local profile holds it.
type metaView struct {
	ID        string `json:"id" yaml:"id"`
	Mime      string `json:"mime" yaml:"mime"`
	Expiry    *int64 `json:"expiry,omitempty" yaml:"expiry,omitempty"`
	ExpiresIn string `json:"expires_in,omitempty" yaml:"expires_in,omitempty"`
	Owned     bool   `json:"owned" yaml:"owned"`
	URL       string `json:"url" yaml:"url"`
}

func newMetaCommand(flags *globalFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "meta <id|url>",
		Short: "Print paste metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.openShared(cmd)
			if err != nil {
				return err
			}
			defer env.Close()
			view, err := fetchMeta(cmd.Context(), env.Client, args[0], env.Drafts.Secret(), env.Config.ShareBase())
			if err != nil {
				return err
			}
			return writeMeta(cmd.OutOrStdout(), view, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format (json or yaml)")
	return cmd
}

func fetchMeta(ctx context.Context, svc backend.PasteService, location, secret, shareBase string) (metaView, error) {
	id := paste.ParseLocation(location)
	if id == "" {
		return metaView{}, fmt.Errorf("%q is not a paste id or link", location)
	}
	res := svc.GetMeta(ctx, id)
	switch res.Outcome {
	case backend.OutcomeOK:
	case backend.OutcomeNotFound:
		return metaView{}, fmt.Errorf("paste %s not found, either it never existed or it has expired", id)
	default:
		return metaView{}, fmt.Errorf("load details of paste %s: %w", id, res.Err)
	}

	meta := res.Value
	view := metaView{
		ID:     meta.ID,
		Mime:   meta.Mime,
		Expiry: meta.Expiry,
		Owned:  paste.Owns(secret, meta.SecretOrEmpty()),
		URL:    paste.ShareURL(shareBase, meta.ID),
	}
	if view.ID == "" {
		view.ID = id
		view.URL = paste.ShareURL(shareBase, id)
	}
	if meta.Expiry != nil {
		view.ExpiresIn = paste.FormatExpiry(*meta.Expiry)
	}
	return view, nil
}

func writeMeta(out io.Writer, view metaView, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml", "":
		data, err := yaml.Marshal(view)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
