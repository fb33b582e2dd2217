package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cxp-platform/cxp-cli/internal/auth"
	"github.com/cxp-platform/cxp-cli/internal/iam"
)

var (
	// Overridden in tests
	newCredentialStore = func() auth.CredentialStore { return auth.NewKeyringStore() }
	surveyAskOne       = survey.AskOne
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long:  `Manage the IAM access tokens used to call each environment.`,
	}

	// Add subcommands
	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthStatusCmd(),
	)

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:       "login <env>",
		Short:     "Login to an IAM environment",
		ValidArgs: iam.EnvironmentNames(),
		Long: fmt.Sprintf(`Store an IAM access token for an environment in the OS keyring.

The token is read from --token or prompted for. In CI, set %s or
%s_<ENV> instead of logging in.`, auth.TokenEnvVar, auth.TokenEnvVar),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := iam.ParseEnvironment(args[0])
			if err != nil {
				return err
			}

			if token == "" {
				prompt := &survey.Password{
					Message: fmt.Sprintf("IAM access token for %s:", env),
				}
				if err := surveyAskOne(prompt, &token, survey.WithValidator(survey.Required)); err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
			}

			manager := auth.NewManager(newCredentialStore())
			creds, err := manager.Login(string(env), token)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			Success("Logged in to %s", env)
			if creds.Subject != "" {
				fmt.Fprintf(colorOutput, "   Subject: %s\n", color.CyanString(creds.Subject))
			}
			if creds.ExpiresAt != nil {
				printValidity(time.Until(*creds.ExpiresAt))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Access token (prompted for when omitted)")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "logout <env>",
		Short:     "Logout from an IAM environment",
		Long:      `Remove the stored access token for an environment.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: iam.EnvironmentNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := iam.ParseEnvironment(args[0])
			if err != nil {
				return err
			}

			manager := auth.NewManager(newCredentialStore())
			if err := manager.Logout(string(env)); err != nil {
				if errors.Is(err, auth.ErrNotLoggedIn) {
					Warn("Not logged in to %s", env)
					return nil
				}
				return fmt.Errorf("logout failed: %w", err)
			}

			Success("Logged out of %s", env)
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	var showToken bool

	cmd := &cobra.Command{
		Use:   "status [env]",
		Short: "Show authentication status",
		Long:  `Display the token source and validity for one or all environments.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envs := iam.EnvironmentNames()
			if len(args) == 1 {
				env, err := iam.ParseEnvironment(args[0])
				if err != nil {
					return err
				}
				envs = []string{string(env)}
			}

			manager := auth.NewManager(newCredentialStore())

			// If --show-token is used, just output the token and nothing else
			if showToken {
				if len(envs) != 1 {
					return &iam.UsageError{Message: "--show-token requires an environment"}
				}
				status := manager.Status(envs[0])
				if !status.LoggedIn {
					return fmt.Errorf("not logged in to %s", envs[0])
				}
				_, _ = fmt.Fprint(colorOutput, status.Credentials.AccessToken)
				return nil
			}

			for _, env := range envs {
				printAuthStatus(manager.Status(env))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showToken, "show-token", false, "Output only the access token (for use in scripts)")
	return cmd
}

func printAuthStatus(status *auth.Status) {
	if !status.LoggedIn {
		fmt.Fprintf(colorOutput, "%s: 🔐 Not logged in\n", status.Environment)
		return
	}

	fmt.Fprintf(colorOutput, "%s: %s (from %s)\n",
		status.Environment, color.GreenString("✅ Logged in"), status.Source)

	creds := status.Credentials
	if creds.Subject != "" {
		fmt.Fprintf(colorOutput, "   Subject: %s\n", color.CyanString(creds.Subject))
	}
	if creds.ExpiresAt != nil {
		if creds.IsExpired() {
			fmt.Fprintln(colorOutput, color.YellowString("   Access token: ⚠️  Expired"))
		} else {
			printValidity(time.Until(*creds.ExpiresAt))
		}
	}
}

func printValidity(d time.Duration) {
	fmt.Fprintf(colorOutput, "   Access token valid for %s\n",
		color.GreenString("%dh %dm", int(d.Hours()), int(d.Minutes())%60))
}
