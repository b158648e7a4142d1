package cli

import (
	"fmt"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/config"
)

var pushSubscribeCmd = LeafCommand{
	Use:   "subscribe",
	Short: "Store a browser push subscription for the current profile",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "endpoint", Usage: "push service endpoint URL"},
		{Name: "p256dh", Usage: "client public key (base64url)"},
		{Name: "auth", Usage: "client auth secret (base64url)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		var in clinic.NewSubscription
		in.Endpoint, _ = cmd.Flags().GetString("endpoint")
		in.Keys.P256dh, _ = cmd.Flags().GetString("p256dh")
		in.Keys.Auth, _ = cmd.Flags().GetString("auth")

		return withApp(cmd, func(a *app) error {
			return runPushSubscribe(cmd, a.clinic, userID, in)
		})
	},
}.Build()

var pushTestCmd = LeafCommand{
	Use:   "test",
	Short: "Send a test notification to the current profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			return runPushTest(cmd, a.clinic, userID)
		})
	},
}.Build()

var pushKeysCmd = LeafCommand{
	Use:   "keys",
	Short: "Generate a VAPID key pair",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPushKeys(cmd, webpush.GenerateVAPIDKeys)
	},
}.Build()

var pushCmd = GroupCommand{
	Use:         "push",
	Short:       "Manage push notifications",
	Subcommands: []*cobra.Command{pushSubscribeCmd, pushTestCmd, pushKeysCmd},
}.Build()

func runPushSubscribe(cmd *cobra.Command, svc *clinic.Service, userID string, in clinic.NewSubscription) error {
	if err := svc.SaveSubscription(commandContext(cmd), userID, in); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "push subscription saved for %s\n", Primary(userID))
	return nil
}

func runPushTest(cmd *cobra.Command, svc *clinic.Service, userID string) error {
	if err := svc.TestNotification(commandContext(cmd), userID); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), Success("Notificação enviada com sucesso!"))
	return nil
}

// runPushKeys prints a fresh key pair as environment assignments.
func runPushKeys(cmd *cobra.Command, generate func() (string, string, error)) error {
	privateKey, publicKey, err := generate()
	if err != nil {
		return fmt.Errorf("failed to generate VAPID keys: %w", err)
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s_PUSH_PUBLIC_KEY=%s\n", config.EnvPrefix, publicKey)
	_, _ = fmt.Fprintf(w, "%s_PUSH_PRIVATE_KEY=%s\n", config.EnvPrefix, privateKey)
	return nil
}
