package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ledgerdesk/ledgerdesk/internal/activity"
	"github.com/ledgerdesk/ledgerdesk/internal/cli"
	"github.com/ledgerdesk/ledgerdesk/internal/model"
	"github.com/ledgerdesk/ledgerdesk/internal/requests"
)

func newRequestsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Attendance session and lesson plan reopen/delete requests",
	}
	cmd.AddCommand(newRequestsListCommand(a))
	cmd.AddCommand(newRequestsCreateCommand(a))
	cmd.AddCommand(newRequestsDecideCommand(a, model.DecisionApprove))
	cmd.AddCommand(newRequestsDecideCommand(a, model.DecisionReject))
	return cmd
}

func (a *app) requestsService() (*requests.Service, error) {
	c, err := a.client()
	if err != nil {
		return nil, err
	}
	return requests.NewService(c), nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

type entityFlags struct {
	entityType string
	entityID   int
}

func (f *entityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.entityType, "entity-type", string(model.EntityAttendanceSession), "attendance_session or lesson_plan")
	cmd.Flags().IntVar(&f.entityID, "entity-id", 0, "attendance session or lesson plan id")
	_ = cmd.MarkFlagRequired("entity-id")
}

func (f *entityFlags) ref() model.EntityRef {
	return model.EntityRef{Type: model.EntityType(f.entityType), ID: f.entityID}
}

func newRequestsListCommand(a *app) *cobra.Command {
	var f entityFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the request history of an entity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.requestsService()
			if err != nil {
				return err
			}
			history, err := svc.History(cmd.Context(), f.ref())
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No requests found."))
				return nil
			}
			return cli.WriteRequests(cmd.OutOrStdout(), history)
		},
	}
	f.register(cmd)
	return cmd
}

func newRequestsCreateCommand(a *app) *cobra.Command {
	var f entityFlags
	var kind, reason string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "File a reopen or delete request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.requestsService()
			if err != nil {
				return err
			}

			in := model.RequestInput{
				EntityType: model.EntityType(f.entityType),
				EntityID:   f.entityID,
				Kind:       model.RequestKind(kind),
				Reason:     reason,
			}
			created, err := svc.Create(cmd.Context(), in)
			if err != nil {
				var pendingErr *requests.PendingError
				if errors.As(err, &pendingErr) {
					fmt.Fprintln(cmd.ErrOrStderr(), cli.WarningStyle.Render("A request is already pending for this entity:"))
					_ = cli.WriteRequests(cmd.ErrOrStderr(), pendingErr.History)
				}
				return err
			}

			a.record(activity.ActionRequestCreated, fmt.Sprintf("request:%d", created.ID),
				fmt.Sprintf("%s %s %d", created.Kind, created.EntityType, created.EntityID))
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(fmt.Sprintf("Created request %d (%s)", created.ID, created.Status)))
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", string(model.RequestReopen), "reopen or delete")
	cmd.Flags().StringVar(&reason, "reason", "", "why the entity should be reopened or deleted")

	return cmd
}

func newRequestsDecideCommand(a *app, d model.Decision) *cobra.Command {
	var note string

	action := activity.ActionRequestApproved
	if d == model.DecisionReject {
		action = activity.ActionRequestRejected
	}

	cmd := &cobra.Command{
		Use:   string(d) + " <id>",
		Short: fmt.Sprintf("%s a pending request", d),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.requestsService()
			if err != nil {
				return err
			}

			decided, err := svc.Decide(cmd.Context(), id, d, note)
			if err != nil {
				return err
			}

			a.record(action, fmt.Sprintf("request:%d", decided.ID), note)
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(fmt.Sprintf("Request %d is now %s", decided.ID, decided.Status)))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "note attached to the decision")

	return cmd
}
