package iam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cxp-platform/cxp-cli/internal/config"
)

const createApplicationPath = "/cxp-iam/api/v1/applications"

// ApplicationRequest is the body of the create-application call. Absent
// optional fields are sent as null.
type ApplicationRequest struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Description *string `json:"description"`
	Contact     *string `json:"contact"`
	Version     *string `json:"version"`
	Git         *string `json:"git"`
}

// ApplicationDetails is the created application as returned by IAM
type ApplicationDetails struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId"`
	Secret      string `json:"secret"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`

	// Extra holds the response fields not mapped above
	Extra map[string]interface{} `json:"-"`
}

// UnmarshalJSON accepts scalar ids of any JSON type. The application already
// exists once IAM answers, so a numeric id must still reach the config file.
func (d *ApplicationDetails) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	take := func(key string) string {
		s, ok := scalarString(raw[key])
		if ok {
			delete(raw, key)
		}
		return s
	}

	*d = ApplicationDetails{
		ID:          take("id"),
		ClientID:    take("clientId"),
		Secret:      take("secret"),
		Name:        take("name"),
		DisplayName: take("displayName"),
	}
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}

// scalarString formats JSON strings, numbers and booleans. Objects, arrays
// and null are reported as not scalar.
func scalarString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// String omits the secret
func (d ApplicationDetails) String() string {
	return fmt.Sprintf("application %s (client %s)", d.ID, d.ClientID)
}

// ApplicationName derives the IAM application name from a display name:
// lower-cased, trimmed, and every space replaced by a hyphen. Runs of spaces
// are not collapsed and other whitespace inside the name is kept.
func ApplicationName(displayName string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(displayName)), " ", "-")
}

// NewApplicationRequest builds the create-application body from config metadata
func NewApplicationRequest(meta config.ApplicationMetadata) (*ApplicationRequest, error) {
	if strings.TrimSpace(meta.DisplayName) == "" {
		return nil, &ConfigError{Field: "application.display_name"}
	}

	return &ApplicationRequest{
		Name:        ApplicationName(meta.DisplayName),
		DisplayName: meta.DisplayName,
		Description: optional(meta.Description),
		Contact:     optional(meta.LeadDeveloperEmail),
		Version:     optional(meta.AppVersion),
		Git:         optional(meta.GithubURL),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateApplication creates the application record in IAM
func CreateApplication(ctx context.Context, client *Client, meta config.ApplicationMetadata) (*ApplicationDetails, error) {
	req, err := NewApplicationRequest(meta)
	if err != nil {
		return nil, err
	}

	var details ApplicationDetails
	if err := client.Post(ctx, "create application", createApplicationPath, req, &details); err != nil {
		return nil, err
	}

	if details.ID == "" || details.ClientID == "" {
		return nil, &RequestError{
			Op:  "create application",
			URL: client.BaseURL() + createApplicationPath,
			Err: fmt.Errorf("response is missing id or clientId"),
		}
	}

	return &details, nil
}
