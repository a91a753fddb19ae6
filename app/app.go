package app

import (
	"context"

	"github.com/ymurata/kaiyaku-form/config"
	"github.com/ymurata/kaiyaku-form/gateway"
	"github.com/ymurata/kaiyaku-form/pdf"
)

// Store is the slice of the local fallback database the controllers and the
// session middleware need.
type Store interface {
	gateway.FallbackStore
	CreateSession(ctx context.Context, password string) (string, error)
	SessionPassword(ctx context.Context, token string) (string, bool)
	DeleteSession(ctx context.Context, token string) error
}

type App struct {
	Gateway *gateway.Client
	Store   Store
	Fonts   *pdf.FontLoader
	Config  config.Config
}
