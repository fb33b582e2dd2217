package cli

import (
	"github.com/spf13/cobra"

	"github.com/cxp-platform/cxp-cli/internal/iam"
)

type environmentRow struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
}

// environmentList is the env list view, in declared order
type environmentList []environmentRow

func newEnvironmentList() environmentList {
	var list environmentList
	for _, name := range iam.EnvironmentNames() {
		env, baseURL, _ := iam.LookupEnvironment(name)
		list = append(list, environmentRow{Name: env.String(), BaseURL: baseURL})
	}
	return list
}

func (environmentList) headers() []string {
	return []string{"ENVIRONMENT", "IAM URL"}
}

func (l environmentList) rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, e := range l {
		rows = append(rows, []string{e.Name, e.BaseURL})
	}
	return rows
}

type serviceRow struct {
	Name     string `json:"name"`
	RoleID   string `json:"role_id"`
	RoleName string `json:"role_name"`
}

// serviceList is the services list view, in assignment order
type serviceList []serviceRow

func newServiceList(services []iam.PlatformService) serviceList {
	list := make(serviceList, 0, len(services))
	for _, s := range services {
		list = append(list, serviceRow{Name: s.Name, RoleID: s.RoleID, RoleName: s.RoleName})
	}
	return list
}

func (serviceList) headers() []string {
	return []string{"SERVICE", "ROLE ID", "ROLE NAME"}
}

func (l serviceList) rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, s := range l {
		rows = append(rows, []string{s.Name, s.RoleID, s.RoleName})
	}
	return rows
}

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show IAM environments",
	}

	cmd.AddCommand(newEnvListCmd())
	return cmd
}

func newEnvListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the environments accepted by register",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(colorOutput, output)
			if err != nil {
				return err
			}
			return p.list(newEnvironmentList())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	return cmd
}

func newServicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Show platform services",
	}

	cmd.AddCommand(newServicesListCmd())
	return cmd
}

func newServicesListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the platform services whose roles register assigns",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(colorOutput, output)
			if err != nil {
				return err
			}
			return p.list(newServiceList(iam.PlatformServices()))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	return cmd
}
