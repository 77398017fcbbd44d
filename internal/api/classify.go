package api

import (
	"context"
	"strings"

	"github.com/crumbsapp/crumbs/common"
	"github.com/crumbsapp/crumbs/internal/cleanup"
)

// Classify resolves the cleanup type of a domain, or of one of its cookies
// when p.Name is set, and lists the rules that matched. An empty domain
// stands for local files.
func (s *Api) Classify(ctx context.Context, p common.ClassifyParams) (*common.ClassifyResponse, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	domain := strings.TrimPrefix(p.Domain, ".")
	t := settings.ClassifyDomain(domain)
	if p.Name != "" {
		t = settings.ClassifyCookie(domain, p.Name)
	}
	return &common.ClassifyResponse{
		Domain:   domain,
		Name:     p.Name,
		Type:     t,
		Badge:    cleanup.BadgeFor(t),
		Matching: settings.MatchingRules(domain, p.Name),
	}, nil
}

func (s *Api) Badge(t cleanup.Type) cleanup.Badge {
	return cleanup.BadgeFor(t)
}
