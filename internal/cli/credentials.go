package cli

import (
	"github.com/spf13/cobra"

	"github.com/cxp-platform/cxp-cli/internal/iam"
)

func newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Inspect service account credentials",
	}

	cmd.AddCommand(newCredentialsDecodeCmd())
	return cmd
}

func newCredentialsDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <credential>",
		Short: "Show the client id inside a service account credential",
		Long: `Decode a base64 service account credential printed by register and show
the client id it belongs to. The secret is never printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, secret, err := iam.DecodeCredentials(args[0])
			if err != nil {
				return &iam.UsageError{Message: err.Error()}
			}

			Info("Client ID: %s", clientID)
			if secret == "" {
				Warn("Credential has an empty secret")
			}
			return nil
		},
	}
}
