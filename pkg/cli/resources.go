package cli

import (
	"fmt"

	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/spf13/cobra"
)

var milestoneActions = map[string]api.MilestoneActionKind{
	"notify":      api.SENDNOTIFICATION,
	"auto-claim":  api.AUTOCLAIM,
	"auto-pause":  api.AUTOPAUSE,
	"auto-top-up": api.AUTOTOPUP,
}

// MilestoneOptions holds flags for milestones add.
type MilestoneOptions struct {
	*RootOptions
	At      uint64
	Action  string
	Message string
	Amount  uint64
}

// NewMilestonesCommand creates the milestones command group.
func NewMilestonesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Manage release milestones on a stream",
	}

	opts := &MilestoneOptions{RootOptions: rootOpts}
	add := &cobra.Command{
		Use:   "add <stream-id>",
		Short: "Attach a milestone that fires once released funds reach a threshold",
		Long: `Attach a milestone that fires once released funds reach a threshold.

Actions: notify, auto-claim, auto-pause, auto-top-up.

Example:
  streamctl --as alice milestones add 3 --at 5000 --action notify --message "halfway"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			kind, ok := milestoneActions[opts.Action]
			if !ok {
				return fmt.Errorf("invalid action %q: must be one of notify, auto-claim, auto-pause, auto-top-up", opts.Action)
			}
			action := api.MilestoneAction{Kind: kind}
			switch kind {
			case api.SENDNOTIFICATION:
				action.Message = &opts.Message
			case api.AUTOTOPUP:
				action.Amount = &opts.Amount
			}

			mid, err := opts.Client().AddMilestone(cmd.Context(), id, api.NewMilestone{TriggerAmount: opts.At, Action: action})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), api.Created{Id: mid})
		},
	}
	add.Flags().Uint64Var(&opts.At, "at", 0, "released amount that triggers the milestone")
	add.Flags().StringVar(&opts.Action, "action", "notify", "action to run")
	add.Flags().StringVar(&opts.Message, "message", "", "notification text for notify")
	add.Flags().Uint64Var(&opts.Amount, "amount", 0, "sats to add for auto-top-up")

	list := streamCommand("list <stream-id>", "List milestones on a stream", func(cmd *cobra.Command, id uint64) error {
		milestones, err := rootOpts.Client().ListMilestones(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), milestones)
	})

	cmd.AddCommand(add, list)
	return cmd
}

// TemplateOptions holds flags for templates create and use.
type TemplateOptions struct {
	*RootOptions
	Name         string
	Description  string
	SatsPerSec   uint64
	DurationSecs uint64
	Recipient    string
	TotalLocked  uint64
}

// NewTemplatesCommand creates the templates command group.
func NewTemplatesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage reusable stream templates",
	}
	opts := &TemplateOptions{RootOptions: rootOpts}

	create := &cobra.Command{
		Use:           "create",
		Short:         "Save a rate and duration as a template",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.NewTemplate{Name: opts.Name, SatsPerSec: opts.SatsPerSec, DurationSecs: opts.DurationSecs}
			if opts.Description != "" {
				req.Description = &opts.Description
			}
			id, err := opts.Client().CreateTemplate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), api.Created{Id: id})
		},
	}
	create.Flags().StringVar(&opts.Name, "name", "", "template name")
	create.Flags().StringVar(&opts.Description, "description", "", "optional description")
	create.Flags().Uint64Var(&opts.SatsPerSec, "rate", 0, "sats released per second")
	create.Flags().Uint64Var(&opts.DurationSecs, "duration", 0, "duration in seconds")
	_ = create.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List templates",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := opts.Client().ListTemplates(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), templates)
		},
	}

	use := streamCommand("use <template-id>", "Create a stream from a template", func(cmd *cobra.Command, id uint64) error {
		sid, err := opts.Client().CreateStreamFromTemplate(cmd.Context(), id, api.NewStreamFromTemplate{
			Recipient:   opts.Recipient,
			TotalLocked: opts.TotalLocked,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), api.Created{Id: sid})
	})
	use.Flags().StringVar(&opts.Recipient, "to", "", "recipient principal")
	use.Flags().Uint64Var(&opts.TotalLocked, "amount", 0, "sats to lock")
	_ = use.MarkFlagRequired("to")

	cmd.AddCommand(create, list, use)
	return cmd
}

// NewNotificationsCommand creates the notifications command group.
func NewNotificationsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Read the caller's notifications",
	}

	var unread bool
	list := &cobra.Command{
		Use:           "list",
		Short:         "List notifications",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.Client().Notifications(cmd.Context(), unread)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}
	list.Flags().BoolVar(&unread, "unread", false, "only unread notifications")

	read := streamCommand("read <notification-id>", "Mark a notification as read", func(cmd *cobra.Command, id uint64) error {
		if err := opts.Client().MarkNotificationRead(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "notification %d marked read\n", id)
		return nil
	})

	cmd.AddCommand(list, read)
	return cmd
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats [user]",
		Short:         "Show global statistics, or one user's",
		Long:          "Show global statistics. With a user argument, show that user's totals instead.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				us, err := opts.Client().UserStats(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), us)
			}
			gs, err := opts.Client().GlobalStats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), gs)
		},
	}
}
