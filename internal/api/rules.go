package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/crumbsapp/crumbs/common"
	"github.com/crumbsapp/crumbs/internal/cleanup"
	"github.com/crumbsapp/crumbs/internal/rules"
)

func (s *Api) ListRules(ctx context.Context) (*common.RulesResponse, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return &common.RulesResponse{Rules: settings.Rules(), Options: settings.Options()}, nil
}

// AddRule stores a rule. When a rule with the same expression exists and
// p.Replace is not set, it fails with rules.ErrRuleExists naming the
// existing type so the caller can ask for confirmation.
func (s *Api) AddRule(ctx context.Context, p common.RuleParams) (*common.RuleResponse, error) {
	expr, err := rules.ParseExpression(p.Expression)
	if err != nil {
		return nil, err
	}
	if !p.Type.Valid() {
		return nil, fmt.Errorf("rule %q: %w", expr.Raw, cleanup.ErrUnknownType)
	}

	resp := &common.RuleResponse{}
	existing, err := s.store.Get(ctx, expr.Raw)
	switch {
	case err == nil:
		if !p.Replace {
			return nil, fmt.Errorf("%w: %s is %s", rules.ErrRuleExists, existing.Expression, existing.Type)
		}
		resp.Replaced = true
		prev := existing.Type
		resp.Previous = &prev
	case !errors.Is(err, rules.ErrRuleNotFound):
		return nil, err
	}

	resp.Rule = rules.Rule{Expression: expr.Raw, Type: p.Type, Temporary: p.Temporary}
	if err := s.store.Put(ctx, resp.Rule); err != nil {
		return nil, err
	}
	s.log.Info("rule %s set to %s", resp.Rule.Expression, resp.Rule.Type)
	return resp, nil
}

func (s *Api) RemoveRule(ctx context.Context, expression string) error {
	if err := s.store.Delete(ctx, expression); err != nil {
		return err
	}
	s.log.Info("rule %s removed", rules.NormalizeExpression(expression))
	return nil
}

// FindRule looks up the rule with exactly this expression.
func (s *Api) FindRule(ctx context.Context, expression string) (*common.FindResponse, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	r, ok := settings.FindExact(expression)
	if !ok {
		return &common.FindResponse{}, nil
	}
	return &common.FindResponse{Found: true, Rule: &r}, nil
}

func (s *Api) ValidateExpression(expression string) *common.ValidateResponse {
	if !rules.IsValidExpression(expression) {
		return &common.ValidateResponse{}
	}
	return &common.ValidateResponse{Valid: true, Normalized: rules.NormalizeExpression(expression)}
}

// ClearTemporary removes every temporary rule.
func (s *Api) ClearTemporary(ctx context.Context) (*common.ClearResponse, error) {
	n, err := s.store.ClearTemporary(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		s.log.Info("removed %d temporary rules", n)
	}
	return &common.ClearResponse{Removed: n}, nil
}

// SetOptions updates the stored options named in p and returns the result.
func (s *Api) SetOptions(ctx context.Context, p common.OptionsParams) (*rules.Options, error) {
	if p.FallbackType != nil {
		if !p.FallbackType.Valid() {
			return nil, fmt.Errorf("invalid fallback type: %w", cleanup.ErrUnknownType)
		}
		if err := s.store.SetOption(ctx, rules.OptionFallbackType, p.FallbackType.String()); err != nil {
			return nil, err
		}
	}
	for key, v := range map[string]*bool{
		rules.OptionWhitelistNoTLD:      p.WhitelistNoTLD,
		rules.OptionWhitelistFileSystem: p.WhitelistFileSystem,
	} {
		if v == nil {
			continue
		}
		if err := s.store.SetOption(ctx, key, strconv.FormatBool(*v)); err != nil {
			return nil, err
		}
	}
	settings, err := rules.Load(ctx, s.store)
	if err != nil {
		return nil, err
	}
	opts := settings.Options()
	return &opts, nil
}
