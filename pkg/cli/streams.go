package cli

import (
	"fmt"

	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/spf13/cobra"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Recipient    string
	SatsPerSec   uint64
	DurationSecs uint64
	TotalLocked  uint64
	Title        string
	Description  string
	Tags         []string
	Metadata     map[string]string
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Lock funds into a new stream",
		Long: `Lock funds into a new stream that releases sats_per_sec to the recipient.

Example:
  streamctl --as alice create --to bob --rate 10 --duration 3600 --amount 36000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.NewStream{
				Recipient:    opts.Recipient,
				SatsPerSec:   opts.SatsPerSec,
				DurationSecs: opts.DurationSecs,
				TotalLocked:  opts.TotalLocked,
			}
			if opts.Title != "" {
				req.Title = &opts.Title
			}
			if opts.Description != "" {
				req.Description = &opts.Description
			}
			if len(opts.Tags) > 0 {
				req.Tags = &opts.Tags
			}
			if len(opts.Metadata) > 0 {
				req.Metadata = &opts.Metadata
			}

			id, err := opts.Client().CreateStream(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), api.Created{Id: id})
		},
	}

	cmd.Flags().StringVar(&opts.Recipient, "to", "", "recipient principal")
	cmd.Flags().Uint64Var(&opts.SatsPerSec, "rate", 0, "sats released per second")
	cmd.Flags().Uint64Var(&opts.DurationSecs, "duration", 0, "stream duration in seconds")
	cmd.Flags().Uint64Var(&opts.TotalLocked, "amount", 0, "sats to lock")
	cmd.Flags().StringVar(&opts.Title, "title", "", "optional title")
	cmd.Flags().StringVar(&opts.Description, "description", "", "optional description")
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().StringToStringVar(&opts.Metadata, "meta", nil, "metadata key=value pairs")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// NewGetCommand creates the get command.
func NewGetCommand(opts *RootOptions) *cobra.Command {
	return streamCommand("get <stream-id>", "Show a stream", func(cmd *cobra.Command, id uint64) error {
		st, err := opts.Client().GetStream(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), st)
	})
}

// NewProgressCommand creates the progress command.
func NewProgressCommand(opts *RootOptions) *cobra.Command {
	return streamCommand("progress <stream-id>", "Show release progress of a stream", func(cmd *cobra.Command, id uint64) error {
		p, err := opts.Client().StreamStats(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), p)
	})
}

// NewTopUpCommand creates the top-up command.
func NewTopUpCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "top-up <stream-id> <amount>",
		Short:         "Raise the locked amount of an active stream",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseID(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}
			if err := opts.Client().TopUp(cmd.Context(), id, amount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stream %d topped up by %d sats\n", id, amount)
			return nil
		},
	}
}

// NewPauseCommand creates the pause command.
func NewPauseCommand(opts *RootOptions) *cobra.Command {
	return streamCommand("pause <stream-id>", "Pause an active stream", func(cmd *cobra.Command, id uint64) error {
		if err := opts.Client().Pause(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stream %d paused\n", id)
		return nil
	})
}

// NewResumeCommand creates the resume command.
func NewResumeCommand(opts *RootOptions) *cobra.Command {
	return streamCommand("resume <stream-id>", "Resume a paused stream", func(cmd *cobra.Command, id uint64) error {
		if err := opts.Client().Resume(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stream %d resumed\n", id)
		return nil
	})
}

// NewCancelCommand creates the cancel command.
func NewCancelCommand(opts *RootOptions) *cobra.Command {
	return streamCommand("cancel <stream-id>", "Cancel an active stream and report the refund", func(cmd *cobra.Command, id uint64) error {
		res, err := opts.Client().Cancel(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	})
}

// NewClaimCommand creates the claim command.
func NewClaimCommand(opts *RootOptions) *cobra.Command {
	return streamCommand("claim <stream-id>", "Claim the released buffer as recipient", func(cmd *cobra.Command, id uint64) error {
		amount, err := opts.Client().Claim(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), api.AmountResult{Amount: amount})
	})
}

// NewReclaimCommand creates the reclaim command.
func NewReclaimCommand(opts *RootOptions) *cobra.Command {
	return streamCommand("reclaim <stream-id>", "Reclaim an abandoned buffer as sender", func(cmd *cobra.Command, id uint64) error {
		amount, err := opts.Client().Reclaim(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), api.AmountResult{Amount: amount})
	})
}

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Status string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list [user]",
		Short:         "List streams a user sends or receives",
		Long:          "List streams a user sends or receives. Defaults to the --as principal.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := opts.Principal
			if len(args) == 1 {
				user = args[0]
			}
			var status *api.StreamStatus
			if opts.Status != "" {
				s := api.StreamStatus(opts.Status)
				status = &s
			}
			list, err := opts.Client().ListUserStreams(cmd.Context(), user, status)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "only streams in this status (ACTIVE|PAUSED|CANCELLED|COMPLETED)")

	return cmd
}

// NewSearchCommand creates the search command.
func NewSearchCommand(opts *RootOptions) *cobra.Command {
	var status, sender, recipient string
	var minAmount, maxAmount, minDuration, maxDuration, after, before uint64

	cmd := &cobra.Command{
		Use:           "search",
		Short:         "Search the caller's streams",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter api.StreamFilter
			flags := cmd.Flags()
			if status != "" {
				s := api.StreamStatus(status)
				filter.Status = &s
			}
			if sender != "" {
				filter.Sender = &sender
			}
			if recipient != "" {
				filter.Recipient = &recipient
			}
			if flags.Changed("min-amount") {
				filter.MinAmount = &minAmount
			}
			if flags.Changed("max-amount") {
				filter.MaxAmount = &maxAmount
			}
			if flags.Changed("min-duration") {
				filter.MinDuration = &minDuration
			}
			if flags.Changed("max-duration") {
				filter.MaxDuration = &maxDuration
			}
			if flags.Changed("created-after") {
				filter.CreatedAfter = &after
			}
			if flags.Changed("created-before") {
				filter.CreatedBefore = &before
			}

			list, err := opts.Client().SearchStreams(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "stream status")
	cmd.Flags().StringVar(&sender, "sender", "", "sender principal")
	cmd.Flags().StringVar(&recipient, "recipient", "", "recipient principal")
	cmd.Flags().Uint64Var(&minAmount, "min-amount", 0, "minimum locked amount")
	cmd.Flags().Uint64Var(&maxAmount, "max-amount", 0, "maximum locked amount")
	cmd.Flags().Uint64Var(&minDuration, "min-duration", 0, "minimum duration in seconds")
	cmd.Flags().Uint64Var(&maxDuration, "max-duration", 0, "maximum duration in seconds")
	cmd.Flags().Uint64Var(&after, "created-after", 0, "start time lower bound")
	cmd.Flags().Uint64Var(&before, "created-before", 0, "start time upper bound")

	return cmd
}

// streamCommand builds a command that takes a single stream id.
func streamCommand(use, short string, run func(cmd *cobra.Command, id uint64) error) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, id)
		},
	}
}
