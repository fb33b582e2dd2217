package iam

import (
	"context"
	"fmt"
	"net/url"
)

// RoleAssignment is one entry of the assignRoles request body
type RoleAssignment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func assignRolesPath(clientID string) string {
	return fmt.Sprintf("/cxp-iam/api/v1/tenants/users/%s/assignRoles", url.PathEscape(clientID))
}

// AssignRoles grants each platform service role to the application's client,
// one request per service in declared order. The first failure aborts the
// loop; roles already granted are left in place.
func AssignRoles(ctx context.Context, client *Client, details *ApplicationDetails, services []PlatformService, reporter Reporter) error {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if details == nil || details.ClientID == "" {
		return &RequestError{Op: "assign roles", Err: fmt.Errorf("application has no clientId")}
	}

	path := assignRolesPath(details.ClientID)
	reporter.Start(StageAssignRoles, ServiceNames(services))

	for _, service := range services {
		reporter.Start(StageAssignRole, service.Name)

		body := []RoleAssignment{{ID: service.RoleID, Name: service.RoleName}}
		if err := client.Post(ctx, "assign role for "+service.Name, path, body, nil); err != nil {
			reporter.Fail(StageAssignRole, service.Name, err)
			return err
		}

		reporter.Done(StageAssignRole, service.Name)
	}

	reporter.Done(StageAssignRoles, ServiceNames(services))
	return nil
}
