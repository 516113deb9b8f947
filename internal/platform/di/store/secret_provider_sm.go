// internal/platform/di/store/secret_provider_sm.go
package store

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

var errSecretProviderNotConfigured = errors.New("di.store: sendGridKeyProviderSM not configured")

// sendGridKeyProviderSM fetches the SendGrid API key from Secret Manager.
// Used only when SENDGRID_API_KEY is not set directly.
type sendGridKeyProviderSM struct {
	sm        *secretmanager.Client
	projectID string
	secretID  string
	version   string
}

func (p *sendGridKeyProviderSM) APIKey(ctx context.Context) (string, error) {
	if p == nil || p.sm == nil {
		return "", errSecretProviderNotConfigured
	}
	prj := strings.TrimSpace(p.projectID)
	if prj == "" {
		return "", errors.New("sendGridKeyProviderSM: projectID is empty")
	}
	sid := strings.TrimSpace(p.secretID)
	if sid == "" {
		return "", errors.New("sendGridKeyProviderSM: secretID is empty")
	}
	ver := strings.TrimSpace(p.version)
	if ver == "" {
		ver = "latest"
	}

	name := "projects/" + prj + "/secrets/" + sid + "/versions/" + ver
	resp, err := p.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("sendGridKeyProviderSM: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("sendGridKeyProviderSM: empty payload (" + name + ")")
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
