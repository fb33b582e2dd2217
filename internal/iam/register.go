package iam

import (
	"context"

	"github.com/cxp-platform/cxp-cli/internal/config"
)

// Stage identifies a step of the registration for progress reporting
type Stage string

const (
	StageRegister          Stage = "register"
	StageLoadConfig        Stage = "load-config"
	StageCreateApplication Stage = "create-application"
	StageSaveConfig        Stage = "save-config"
	StageAssignRoles       Stage = "assign-roles"
	StageAssignRole        Stage = "assign-role"
)

// Reporter observes registration progress. It carries no control flow.
type Reporter interface {
	Start(stage Stage, subject string)
	Done(stage Stage, subject string)
	Fail(stage Stage, subject string, err error)
}

// NopReporter discards all events
type NopReporter struct{}

func (NopReporter) Start(Stage, string)       {}
func (NopReporter) Done(Stage, string)        {}
func (NopReporter) Fail(Stage, string, error) {}

// ClientFactory builds the API client for the selected environment
type ClientFactory func(env Environment, baseURL string) *Client

// Result describes a completed registration
type Result struct {
	Environment Environment
	BaseURL     string
	Application *ApplicationDetails
	ConfigPath  string
	UIDKey      string

	// Credentials is the one-time base64 service credential. It is never persisted.
	Credentials string
}

// Registrar runs the registration sequence:
// validate env, load config, create application, persist its id, assign
// roles, build credentials.
type Registrar struct {
	Store     config.Store
	NewClient ClientFactory
	Services  []PlatformService
	Reporter  Reporter
}

// NewRegistrar creates a Registrar with the static platform service table
func NewRegistrar(store config.Store, tokens TokenSource, reporter Reporter) *Registrar {
	return &Registrar{
		Store: store,
		NewClient: func(env Environment, baseURL string) *Client {
			return NewClient(env, baseURL, tokens)
		},
		Services: PlatformServices(),
		Reporter: reporter,
	}
}

// Register registers the configured application in the environment named envName.
//
// The config is saved as soon as the application exists, before any role is
// assigned. A role failure therefore leaves application_uid_<env> on disk
// for an application that is only partly provisioned.
func (r *Registrar) Register(ctx context.Context, envName string) (*Result, error) {
	reporter := r.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	env, err := ParseEnvironment(envName)
	if err != nil {
		return nil, err
	}
	baseURL := env.BaseURL()

	reporter.Start(StageRegister, string(env))

	cfg, err := r.Store.Load()
	if err != nil {
		cerr := &ConfigError{Err: err}
		reporter.Fail(StageLoadConfig, r.Store.Path(), cerr)
		return nil, cerr
	}

	meta, err := cfg.Application()
	if err != nil {
		cerr := NewConfigError(err)
		reporter.Fail(StageLoadConfig, r.Store.Path(), cerr)
		return nil, cerr
	}

	client := r.NewClient(env, baseURL)

	reporter.Start(StageCreateApplication, meta.DisplayName)
	details, err := CreateApplication(ctx, client, meta)
	if err != nil {
		reporter.Fail(StageCreateApplication, meta.DisplayName, err)
		return nil, err
	}
	reporter.Done(StageCreateApplication, details.ID)

	uidKey := config.ApplicationUIDPrefix + string(env)
	cfg.SetApplicationUID(string(env), details.ID)
	if err := r.Store.Save(cfg); err != nil {
		cerr := &ConfigError{Field: config.ApplicationKey + "." + uidKey, Err: err}
		reporter.Fail(StageSaveConfig, r.Store.Path(), cerr)
		return nil, cerr
	}
	reporter.Done(StageSaveConfig, r.Store.Path())

	if err := AssignRoles(ctx, client, details, r.Services, reporter); err != nil {
		return nil, err
	}

	reporter.Done(StageRegister, string(env))

	return &Result{
		Environment: env,
		BaseURL:     baseURL,
		Application: details,
		ConfigPath:  r.Store.Path(),
		UIDKey:      uidKey,
		Credentials: EncodeCredentials(details.ClientID, details.Secret),
	}, nil
}
