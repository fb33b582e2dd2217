package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cxp-platform/cxp-cli/internal/config"
	"github.com/cxp-platform/cxp-cli/internal/iam"
)

// registration is an application id recorded for one environment
type registration struct {
	Environment string `json:"environment"`
	ID          string `json:"id"`
}

// applicationView is the app show view of the project config
type applicationView struct {
	DisplayName        string         `json:"display_name"`
	Name               string         `json:"name"`
	Description        string         `json:"description,omitempty"`
	LeadDeveloperEmail string         `json:"lead_developer_email,omitempty"`
	AppVersion         string         `json:"app_version,omitempty"`
	GithubURL          string         `json:"github_url,omitempty"`
	Registrations      []registration `json:"registrations,omitempty"`
}

func newApplicationView(cfg *config.ProjectConfig) (*applicationView, error) {
	meta, err := cfg.Application()
	if err != nil {
		return nil, err
	}

	view := &applicationView{
		DisplayName:        meta.DisplayName,
		Name:               iam.ApplicationName(meta.DisplayName),
		Description:        meta.Description,
		LeadDeveloperEmail: meta.LeadDeveloperEmail,
		AppVersion:         meta.AppVersion,
		GithubURL:          meta.GithubURL,
	}
	for _, env := range iam.EnvironmentNames() {
		if id, ok := cfg.ApplicationUID(env); ok {
			view.Registrations = append(view.Registrations, registration{Environment: env, ID: id})
		}
	}
	return view, nil
}

func (v *applicationView) title() string {
	return "Application"
}

func (v *applicationView) fields() []field {
	fields := []field{
		{"display_name", v.DisplayName},
		{"name", v.Name},
		{"description", v.Description},
		{"lead_developer_email", v.LeadDeveloperEmail},
		{"app_version", v.AppVersion},
		{"github_url", v.GithubURL},
	}
	for _, r := range v.Registrations {
		fields = append(fields, field{config.ApplicationUIDPrefix + r.Environment, r.ID})
	}
	return fields
}

func newAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Show the application in the project config",
	}

	cmd.AddCommand(newAppShowCmd())
	return cmd
}

func newAppShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show application metadata and the ids registered per environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(colorOutput, output)
			if err != nil {
				return err
			}

			cfg, err := config.NewFileStore(config.ResolvePath(viper.GetString("config"))).Load()
			if err != nil {
				return iam.NewConfigError(err)
			}

			view, err := newApplicationView(cfg)
			if err != nil {
				return iam.NewConfigError(err)
			}
			return p.show(view)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	return cmd
}
