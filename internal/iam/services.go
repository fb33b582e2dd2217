package iam

import "strings"

// PlatformService is a platform service whose role is granted to every
// registered application
type PlatformService struct {
	Name     string `json:"name"`
	RoleID   string `json:"role_id"`
	RoleName string `json:"role_name"`
}

var platformServices = [...]PlatformService{
	{
		Name:     "config-service",
		RoleID:   "7f3c2a1e-5b8d-4c6f-9e0a-1d2b3c4d5e6f",
		RoleName: "config-service-reader",
	},
	{
		Name:     "notification-service",
		RoleID:   "a94e1b72-0c3d-4f5e-8a6b-7c8d9e0f1a2b",
		RoleName: "notification-service-publisher",
	},
}

// PlatformServices returns a copy of the platform service table in declared order
func PlatformServices() []PlatformService {
	services := make([]PlatformService, len(platformServices))
	copy(services, platformServices[:])
	return services
}

// ServiceNames joins the names of services for progress messages
func ServiceNames(services []PlatformService) string {
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}
