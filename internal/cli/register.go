package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cxp-platform/cxp-cli/internal/auth"
	"github.com/cxp-platform/cxp-cli/internal/config"
	"github.com/cxp-platform/cxp-cli/internal/iam"
)

// newRegistrar is swapped out in tests to point the client at a fake IAM
var newRegistrar = func(store config.Store, reporter iam.Reporter) *iam.Registrar {
	manager := auth.NewManager(auth.NewKeyringStore())
	return iam.NewRegistrar(store, manager, reporter)
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <env>",
		Short: "Register the app in IAM and return service credentials",
		Long: fmt.Sprintf(`Register the application described in the project config with IAM.

Creates the application, records its id as application_uid_<env> in the
config file, assigns the platform service roles and prints the service
account credential. The credential is shown only once.

Environment (one of: %s)`, strings.Join(iam.EnvironmentNames(), ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: iam.EnvironmentNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd.Context(), args[0])
		},
	}
}

func runRegister(ctx context.Context, env string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Reject the environment before touching the config file
	selected, err := iam.ParseEnvironment(env)
	if err != nil {
		return err
	}
	Debug("Using IAM %s (%s)", selected.BaseURL(), selected)

	store := config.NewFileStore(config.ResolvePath(viper.GetString("config")))
	Debug("Using config file: %s", store.Path())

	registrar := newRegistrar(store, newProgressReporter(colorOutput))
	result, err := registrar.Register(ctx, env)
	if err != nil {
		return err
	}

	Debug("Registered %s against %s", result.Application, result.BaseURL)
	presentCredentials(result.Credentials)
	return nil
}

// presentCredentials shows the service account credential. It is the only
// place the credential is printed.
func presentCredentials(credentials string) {
	_, _ = fmt.Fprintln(colorOutput, color.GreenString("🔒 Your Service account secret is: %s", credentials))
	_, _ = fmt.Fprintln(colorOutput, color.HiYellowString("⚠️ The secret will be shown only once."))
}
