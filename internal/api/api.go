// Package api implements the operations the browser extension and the CLI
// perform: reading the grouped cookie list and managing rules.
package api

import (
	"context"

	"github.com/crumbsapp/crumbs/internal/config"
	"github.com/crumbsapp/crumbs/internal/cookies"
	"github.com/crumbsapp/crumbs/internal/rules"
	"github.com/crumbsapp/crumbs/pkg/logger"
)

type Api struct {
	log    logger.Logger
	store  rules.Store
	reader *cookies.Reader
	cfg    *config.Config

	// detectStores lists the installed browser cookie stores.
	detectStores func() []cookies.Store

	version, commit, buildType string
}

func NewApi(l logger.Logger, store rules.Store, reader *cookies.Reader, cfg *config.Config) *Api {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Api{
		log:          l,
		store:        store,
		reader:       reader,
		cfg:          cfg,
		detectStores: cookies.DetectStores,
	}
}

// SetVersion records the build information reported by Version.
func (s *Api) SetVersion(version, commit, buildType string) {
	s.version, s.commit, s.buildType = version, commit, buildType
}

// Settings loads a rule snapshot, applying the configured fallback override.
func (s *Api) Settings(ctx context.Context) (*rules.Settings, error) {
	settings, err := rules.Load(ctx, s.store)
	if err != nil {
		return nil, err
	}
	if s.cfg != nil && s.cfg.Fallback != nil {
		opts := settings.Options()
		opts.FallbackType = *s.cfg.Fallback
		settings = settings.WithOptions(opts)
	}
	return settings, nil
}

func (s *Api) Close() error {
	return s.store.Close()
}
