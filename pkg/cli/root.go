// Package cli implements the streamctl command tree.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mohtashimnawaz/satoshiflow/pkg/client"
	"github.com/spf13/cobra"
)

// Environment variables consulted for flag defaults.
const (
	ServerEnv    = "SATOSHIFLOW_URL"
	PrincipalEnv = "SATOSHIFLOW_PRINCIPAL"

	DefaultServer = "http://localhost:8080"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Server    string
	Principal string
}

// Client returns an API client for the configured server and principal.
func (o *RootOptions) Client() *client.Client {
	return client.New(o.Server, o.Principal, nil)
}

// NewRootCommand creates the root command for streamctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "streamctl",
		Short: "streamctl - drive a satoshiflow server",
		Long:  "Create, fund and settle per-second payment streams from the command line.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Server == "" {
				return errors.New("--server must not be empty")
			}
			if opts.Principal == "" {
				return fmt.Errorf("--as is required (or set %s)", PrincipalEnv)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Server, "server", envOr(ServerEnv, DefaultServer), "API base URL")
	cmd.PersistentFlags().StringVar(&opts.Principal, "as", os.Getenv(PrincipalEnv), "principal to act as")

	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewProgressCommand(opts))
	cmd.AddCommand(NewTopUpCommand(opts))
	cmd.AddCommand(NewPauseCommand(opts))
	cmd.AddCommand(NewResumeCommand(opts))
	cmd.AddCommand(NewCancelCommand(opts))
	cmd.AddCommand(NewClaimCommand(opts))
	cmd.AddCommand(NewReclaimCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewMilestonesCommand(opts))
	cmd.AddCommand(NewTemplatesCommand(opts))
	cmd.AddCommand(NewNotificationsCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
