package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/clinic"
)

var notificationsListCmd = LeafCommand{
	Use:   "list",
	Short: "List notifications of the current profile",
	Args:  cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "unread", Usage: "only show unread notifications"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}
		unread, _ := cmd.Flags().GetBool("unread")

		return withApp(cmd, func(a *app) error {
			return runNotificationsList(cmd, a.clinic, userID, unread)
		})
	},
}.Build()

var notificationsReadCmd = LeafCommand{
	Use:   "read NOTIFICATION_ID",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return runNotificationsRead(cmd, a.clinic, args[0])
		})
	},
}.Build()

var notificationsCmd = GroupCommand{
	Use:         "notifications",
	Short:       "Review sent notifications",
	Subcommands: []*cobra.Command{notificationsListCmd, notificationsReadCmd},
}.Build()

func runNotificationsList(cmd *cobra.Command, svc *clinic.Service, userID string, unreadOnly bool) error {
	list, err := svc.Notifications(commandContext(cmd), userID)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	shown := 0
	for _, n := range list {
		if unreadOnly && n.Read {
			continue
		}
		marker := Info("●")
		if n.Read {
			marker = Silent("○")
		}
		_, _ = fmt.Fprintf(w, "%s %s  %s  %s\n", marker, Silent(n.CreatedAt.Local().Format("2006-01-02 15:04")), Primary(n.Title), Silent(n.ID))
		if n.Message != "" {
			_, _ = fmt.Fprintf(w, "    %s\n", n.Message)
		}
		shown++
	}
	if shown == 0 {
		_, _ = fmt.Fprintln(w, "No notifications.")
	}
	return nil
}

func runNotificationsRead(cmd *cobra.Command, svc *clinic.Service, id string) error {
	if err := svc.MarkNotificationRead(commandContext(cmd), id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notification %s marked as read\n", Silent(id))
	return nil
}
