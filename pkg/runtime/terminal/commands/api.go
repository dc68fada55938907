package commands

import (
	"context"

	"github.com/de-tools/dashboard/pkg/models/api"
	"github.com/de-tools/dashboard/pkg/widgets"
)

// API is the dashboard client surface the commands drive.
type API interface {
	widgets.SettingsAPI
	Login(ctx context.Context, username, password string) (api.Token, error)
	AssetURL(name string) string
}

// APIFactory builds a client once flags and environment are resolved.
type APIFactory func() API
