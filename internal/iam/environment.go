// Package iam registers applications with the CXP identity-and-access-management service
package iam

import (
	"fmt"
	"strings"
)

// Environment names one IAM deployment
type Environment string

const (
	EnvDev     Environment = "dev"
	EnvQA      Environment = "qa"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

type environmentEntry struct {
	env     Environment
	baseURL string
}

// environments is declared in the order shown to users
var environments = [...]environmentEntry{
	{EnvDev, "https://iam.dev.cxp-platform.io"},
	{EnvQA, "https://iam.qa.cxp-platform.io"},
	{EnvStaging, "https://iam.staging.cxp-platform.io"},
	{EnvProd, "https://iam.cxp-platform.io"},
}

// EnvironmentNames returns the recognised environment names in declared order
func EnvironmentNames() []string {
	names := make([]string, 0, len(environments))
	for _, e := range environments {
		names = append(names, string(e.env))
	}
	return names
}

// LookupEnvironment resolves a name to its environment and base URL.
// Matching is case-sensitive.
func LookupEnvironment(name string) (Environment, string, bool) {
	for _, e := range environments {
		if string(e.env) == name {
			return e.env, e.baseURL, true
		}
	}
	return "", "", false
}

// ParseEnvironment validates name against the environment table
func ParseEnvironment(name string) (Environment, error) {
	env, _, ok := LookupEnvironment(name)
	if !ok {
		return "", &UsageError{
			Message: fmt.Sprintf("env must be one of: %s", strings.Join(EnvironmentNames(), ", ")),
		}
	}
	return env, nil
}

// BaseURL returns the IAM base URL for the environment, or "" if unknown
func (e Environment) BaseURL() string {
	_, url, _ := LookupEnvironment(string(e))
	return url
}

func (e Environment) String() string {
	return string(e)
}
