package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxp-platform/cxp-cli/internal/auth"
)

// TestCommandExecution helps test cobra command execution
type TestCommandExecution struct {
	Args         []string
	ExpectError  bool
	ExpectOutput []string
	Validate     func(t *testing.T, output string, err error)
}

// ExecuteCommandTest runs a fresh root command with output captured
func ExecuteCommandTest(t *testing.T, test TestCommandExecution) {
	t.Helper()

	output, err := executeRoot(t, test.Args...)

	// Check error expectation
	if test.ExpectError {
		assert.Error(t, err)
	} else {
		assert.NoError(t, err)
	}

	// Check output expectations
	for _, expected := range test.ExpectOutput {
		assert.Contains(t, output, expected)
	}

	// Custom validation
	if test.Validate != nil {
		test.Validate(t, output, err)
	}
}

// executeRoot runs args against a new root command, capturing everything
// written through the output helpers
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	captureOutput(t, &buf)

	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err != nil {
		reportError(err)
	}
	return buf.String(), err
}

// captureOutput redirects the output helpers to buf for the test
func captureOutput(t *testing.T, buf *bytes.Buffer) {
	t.Helper()

	oldOut, oldErr, oldNoColor := colorOutput, errorOutput, color.NoColor
	colorOutput = buf
	errorOutput = buf
	color.NoColor = true

	t.Cleanup(func() {
		colorOutput = oldOut
		errorOutput = oldErr
		color.NoColor = oldNoColor
	})
}

// useMockCredentialStore replaces the keyring with an in-memory store
func useMockCredentialStore(t *testing.T) *auth.MockStore {
	t.Helper()

	store := auth.NewMockStore(nil)
	old := newCredentialStore
	newCredentialStore = func() auth.CredentialStore { return store }
	t.Cleanup(func() { newCredentialStore = old })
	return store
}

// MockSurveyAskOne mocks survey.AskOne for testing interactive prompts
func MockSurveyAskOne(response interface{}) func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return func(p survey.Prompt, resp interface{}, opts ...survey.AskOpt) error {
		switch v := resp.(type) {
		case *string:
			*v = response.(string)
		case *bool:
			*v = response.(bool)
		case *int:
			*v = response.(int)
		}
		return nil
	}
}

// CreateTestProject writes a project config in the given format and returns its path
func CreateTestProject(t *testing.T, format string) string {
	t.Helper()
	tmpDir := t.TempDir()

	var name, content string
	switch format {
	case "yaml":
		name = "cxp.yaml"
		content = `application:
  display_name: My Service
  description: Test application
  lead_developer_email: lead@example.com
  app_version: "0.1.0"
  github_url: https://github.com/acme/my-service
`
	case "toml":
		name = "cxp.toml"
		content = `[application]
display_name = "My Service"
app_version = "0.1.0"
`
	case "json":
		name = "cxp.json"
		content = `{
  "application": {
    "display_name": "My Service",
    "app_version": "0.1.0"
  }
}`
	default:
		t.Fatalf("unknown config format %q", format)
	}

	path := filepath.Join(tmpDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// AssertCommandStructure checks a command exposes the given subcommands
func AssertCommandStructure(t *testing.T, cmd *cobra.Command, subcommands ...string) {
	t.Helper()
	for _, sub := range subcommands {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == sub {
				found = true
				break
			}
		}
		assert.True(t, found, "Subcommand %s not found", sub)
	}
}
