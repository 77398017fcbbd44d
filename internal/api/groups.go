package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/crumbsapp/crumbs/common"
	"github.com/crumbsapp/crumbs/internal/browse"
	"github.com/crumbsapp/crumbs/internal/cookies"
	"github.com/samber/lo"
)

// Groups reads a cookie snapshot and returns it grouped and classified,
// filtered by p.Query.
func (s *Api) Groups(ctx context.Context, p common.GroupsParams) (*common.GroupsResponse, error) {
	if p.Offset < 0 || p.Limit < 0 {
		return nil, fmt.Errorf("invalid page: offset %d, limit %d", p.Offset, p.Limit)
	}
	stores, err := s.stores(p.Stores)
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, sources, err := s.reader.Snapshot(ctx, stores, strings.TrimPrefix(strings.ToLower(strings.TrimSpace(p.Domain)), "."))
	if err != nil {
		return nil, err
	}
	groups, err := browse.Build(snapshot, settings, nil)
	if err != nil {
		return nil, err
	}
	groups = browse.Filter(groups, p.Query)
	s.log.Info("grouped %d cookies into %d domains", len(snapshot), len(groups))
	page := browse.Page(groups, p.Offset, p.Limit)
	return &common.GroupsResponse{
		Groups:       page,
		Offset:       p.Offset,
		Total:        browse.Count(groups),
		TotalGroups:  len(groups),
		FirstParties: browse.FirstParties(page),
		Sources:      sources,
	}, nil
}

// stores resolves the cookie stores to read. Named browsers are looked up
// among the detected stores; otherwise the configured cookie file is used,
// or every detected store when it is "auto".
func (s *Api) stores(browsers []string) ([]cookies.Store, error) {
	if len(browsers) > 0 {
		detected := s.detectStores()
		selected := lo.Filter(detected, func(st cookies.Store, _ int) bool {
			return lo.ContainsBy(browsers, func(b string) bool { return strings.EqualFold(b, st.Browser) })
		})
		if len(selected) == 0 {
			return nil, fmt.Errorf("no cookie store found for %s", strings.Join(browsers, ", "))
		}
		return selected, nil
	}
	if s.cfg != nil && !s.cfg.AutoDetect() {
		return []cookies.Store{{Path: s.cfg.CookieFile}}, nil
	}
	detected := s.detectStores()
	if len(detected) == 0 {
		return nil, fmt.Errorf("no supported browser cookie store found")
	}
	return detected, nil
}
