package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Sidoine1991/agent-position-sub003/internal/capture"
	"github.com/Sidoine1991/agent-position-sub003/internal/components"
	"github.com/Sidoine1991/agent-position-sub003/internal/config"
	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/syncer"
)

type agentApp struct {
	comps *components.AgentComponents
}

func (a *agentApp) close() {
	if a.comps != nil {
		a.comps.Close()
		a.comps = nil
	}
}

// newAgentCommand builds the field client CLI. Every command works offline
// except sync and run, which talk to the server. The caller closes app.
func newAgentCommand() (*cobra.Command, *agentApp) {
	app := &agentApp{}

	root := &cobra.Command{
		Use:           "agent",
		Short:         "Offline-first presence check-ins for field agents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadAgent()
			if err != nil {
				return err
			}
			comps, err := components.InitAgent(cmd.Context(), cfg, components.SetupLogger(cfg.Env))
			if err != nil {
				return err
			}
			app.comps = comps
			return nil
		},
	}

	root.AddCommand(
		app.captureCommand("checkin", "Record a presence check-in", domain.KindCheckin),
		app.captureCommand("start", "Start a mission", domain.KindStartMission),
		app.captureCommand("end", "End the open mission", domain.KindEndMission),
		app.syncCommand(),
		app.statusCommand(),
		app.dismissCommand(),
		app.runCommand(),
	)
	return root, app
}

// RunAgent executes the agent CLI until done or interrupted.
func RunAgent(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root, app := newAgentCommand()
	defer app.close()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *agentApp) captureCommand(use, short string, kind domain.CheckinKind) *cobra.Command {
	var (
		in      capture.Input
		mission string
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Kind = kind
			if mission != "" {
				id, err := uuid.Parse(mission)
				if err != nil {
					return fmt.Errorf("invalid --mission: %w", err)
				}
				in.MissionID = &id
			}

			res, err := a.comps.Recorder.Record(cmd.Context(), in)
			if err != nil {
				return err
			}
			printCapture(cmd.OutOrStdout(), res)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.Latitude, "lat", 0, "latitude in decimal degrees")
	f.Float64Var(&in.Longitude, "lon", 0, "longitude in decimal degrees")
	f.Float64Var(&in.AccuracyMeters, "accuracy", 0, "reported GPS accuracy in meters")
	f.StringVar(&mission, "mission", "", "mission id")
	f.StringVar(&in.Note, "note", "", "free text note")
	f.StringVar(&in.PhotoRef, "photo", "", "reference to an attached photo")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func (a *agentApp) syncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Send queued check-ins to the server now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.comps.Coordinator.Flush(cmd.Context())
			if errors.Is(err, syncer.ErrTransient) {
				if res.Synced == 0 && len(res.Failed) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "server unreachable, check-ins stay queued")
					return nil
				}
				printFlush(cmd.OutOrStdout(), res)
				fmt.Fprintln(cmd.OutOrStdout(), "server could not process every check-in, the rest stay queued")
				return nil
			}
			if err != nil {
				return err
			}
			a.comps.RefreshReference(cmd.Context())
			printFlush(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func (a *agentApp) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pending and rejected check-ins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			counts, err := a.comps.Store.Counts(ctx)
			if err != nil {
				return err
			}
			rejected, err := a.comps.Store.ListRejected(ctx)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), counts, rejected)
			return nil
		},
	}
}

func (a *agentApp) dismissCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <client-event-id>",
		Short: "Drop a rejected check-in from the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id: %w", err)
			}
			if err := a.comps.Store.Dismiss(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dismissed %s\n", id)
			return nil
		},
	}
}

func (a *agentApp) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Sync in the background until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.comps.RunDaemon(cmd.Context())
		},
	}
}

func printCapture(w io.Writer, res capture.Result) {
	ev := res.Item.Event
	fmt.Fprintf(w, "queued %s %s\n", ev.Kind, ev.ClientEventID)
	if ev.MissionID != nil {
		fmt.Fprintf(w, "mission  %s\n", ev.MissionID)
	}
	verdict := "outside zone"
	if res.Verdict.Valid {
		verdict = "inside zone"
	}
	fmt.Fprintf(w, "local check: %s (%s", verdict, res.Verdict.Reason)
	if res.Verdict.DistanceMeters != nil {
		fmt.Fprintf(w, ", %.0f m", *res.Verdict.DistanceMeters)
	}
	fmt.Fprintln(w, "), confirmed on sync")
}

func printFlush(w io.Writer, res syncer.FlushResult) {
	fmt.Fprintf(w, "synced %d, failed %d\n", res.Synced, len(res.Failed))
	for _, f := range res.Failed {
		state := "will retry"
		if f.Terminal {
			state = "rejected"
		}
		fmt.Fprintf(w, "  %s  %s: %s\n", f.ClientEventID, state, f.Error)
	}
}

func printStatus(w io.Writer, counts domain.QueueCounts, rejected []domain.PendingQueueItem) {
	fmt.Fprintf(w, "pending %d, rejected %d\n", counts.Pending, counts.Rejected)
	if len(rejected) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tCAPTURED\tERROR")
	for _, it := range rejected {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.Event.ClientEventID, it.Event.Kind, it.Event.CapturedAt.Format("2006-01-02 15:04:05"), it.LastError)
	}
	_ = tw.Flush()
}
