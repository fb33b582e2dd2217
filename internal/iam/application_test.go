package iam

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxp-platform/cxp-cli/internal/config"
)

func TestApplicationName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My App", "my-app"},
		{"My Service", "my-service"},
		{"  Foo  Bar ", "foo--bar"},
		{"already-hyphenated", "already-hyphenated"},
		{"UPPER", "upper"},
		// tabs and newlines inside the name are kept verbatim
		{"Tab\tName", "tab\tname"},
		{"Line\nBreak", "line\nbreak"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ApplicationName(tt.input)
			assert.Equal(t, tt.want, got)
			// deterministic and idempotent
			assert.Equal(t, got, ApplicationName(got))
		})
	}
}

func TestApplicationNameDoesNotCollapseSpaces(t *testing.T) {
	got := ApplicationName("  Foo  Bar ")

	collapsed := strings.Join(strings.Fields(strings.ToLower("  Foo  Bar ")), "-")
	assert.Equal(t, "foo-bar", collapsed)
	assert.NotEqual(t, collapsed, got, "runs of spaces must map to runs of hyphens")
	assert.Equal(t, "foo--bar", got)
}

func TestNewApplicationRequest(t *testing.T) {
	req, err := NewApplicationRequest(config.ApplicationMetadata{
		DisplayName:        "My Service",
		Description:        "does things",
		LeadDeveloperEmail: "lead@example.com",
		AppVersion:         "1.2.0",
	})
	require.NoError(t, err)

	assert.Equal(t, "my-service", req.Name)
	assert.Equal(t, "My Service", req.DisplayName)
	require.NotNil(t, req.Description)
	assert.Equal(t, "does things", *req.Description)
	require.NotNil(t, req.Contact)
	assert.Equal(t, "lead@example.com", *req.Contact)
	assert.Nil(t, req.Git)
}

func TestNewApplicationRequestMissingDisplayName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, err := NewApplicationRequest(config.ApplicationMetadata{DisplayName: name})
		require.Error(t, err)

		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "application.display_name", cfgErr.Field)
		assert.Equal(t, KindConfig, KindOf(err))
	}
}

func TestCreateApplication(t *testing.T) {
	fake := newFakeIAM(t)
	client := NewClient(EnvDev, fake.URL(), nil)

	details, err := CreateApplication(context.Background(), client, config.ApplicationMetadata{
		DisplayName: "My Service",
		GithubURL:   "https://github.com/acme/my-service",
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", details.ID)
	assert.Equal(t, "c1", details.ClientID)
	assert.Equal(t, "s1", details.Secret)
	assert.NotContains(t, details.String(), "s1")

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/cxp-iam/api/v1/applications", reqs[0].Path)

	var body map[string]interface{}
	decodeJSON(t, reqs[0].Body, &body)
	assert.Equal(t, "my-service", body["name"])
	assert.Equal(t, "My Service", body["displayName"])
	assert.Equal(t, "https://github.com/acme/my-service", body["git"])
	for _, key := range []string{"description", "contact", "version"} {
		v, ok := body[key]
		assert.True(t, ok, "key %s should be present", key)
		assert.Nil(t, v)
	}
}

func TestCreateApplicationHTTPError(t *testing.T) {
	fake := newFakeIAM(t)
	fake.createStatus = http.StatusConflict
	fake.createBody = `{"error":"application exists"}`
	client := NewClient(EnvDev, fake.URL(), nil)

	_, err := CreateApplication(context.Background(), client, config.ApplicationMetadata{DisplayName: "My Service"})
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusConflict, reqErr.StatusCode)
	assert.Contains(t, err.Error(), "application exists")
	assert.Len(t, fake.Requests(), 1, "no retry on failure")
}

func TestCreateApplicationIncompleteResponse(t *testing.T) {
	fake := newFakeIAM(t)
	fake.createBody = `{"id":"a1"}`
	client := NewClient(EnvDev, fake.URL(), nil)

	_, err := CreateApplication(context.Background(), client, config.ApplicationMetadata{DisplayName: "My Service"})
	require.Error(t, err)
	assert.Equal(t, KindRequest, KindOf(err))
}

func TestCreateApplicationNumericID(t *testing.T) {
	fake := newFakeIAM(t)
	fake.createBody = `{"id":42,"clientId":"c1","secret":"s1","createdAt":"2026-01-02T03:04:05Z","tenant":{"id":7}}`
	client := NewClient(EnvDev, fake.URL(), nil)

	details, err := CreateApplication(context.Background(), client, config.ApplicationMetadata{DisplayName: "My Service"})
	require.NoError(t, err)
	assert.Equal(t, "42", details.ID)
	assert.Equal(t, "c1", details.ClientID)

	assert.Equal(t, "2026-01-02T03:04:05Z", details.Extra["createdAt"])
	assert.Contains(t, details.Extra, "tenant")
	assert.NotContains(t, details.Extra, "secret")
}

func TestApplicationDetailsNonScalarID(t *testing.T) {
	var details ApplicationDetails
	require.NoError(t, json.Unmarshal([]byte(`{"id":{"value":"a1"},"clientId":"c1"}`), &details))
	assert.Empty(t, details.ID)
	assert.Equal(t, "c1", details.ClientID)
	assert.Contains(t, details.Extra, "id")
}

func TestCreateApplicationConfigErrorSkipsNetwork(t *testing.T) {
	fake := newFakeIAM(t)
	client := NewClient(EnvDev, fake.URL(), nil)

	_, err := CreateApplication(context.Background(), client, config.ApplicationMetadata{})
	require.Error(t, err)
	assert.Equal(t, KindConfig, KindOf(err))
	assert.Empty(t, fake.Requests())
}
