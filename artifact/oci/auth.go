package oci

import (
	"context"
)

// AuthProvider supplies registry credentials.
type AuthProvider interface {
	// GetCredentials returns the username and password for a registry host.
	// Empty username means anonymous access.
	GetCredentials(ctx context.Context, registry string) (username, password string, err error)
}

// AnonymousAuth provides no credentials.
type AnonymousAuth struct{}

// GetCredentials always reports anonymous access.
func (AnonymousAuth) GetCredentials(ctx context.Context, registry string) (string, string, error) {
	return "", "", nil
}

// StaticAuth provides fixed credentials for every registry.
type StaticAuth struct {
	Username string
	Password string
}

// GetCredentials returns the configured credentials.
func (a StaticAuth) GetCredentials(ctx context.Context, registry string) (string, string, error) {
	return a.Username, a.Password, nil
}
