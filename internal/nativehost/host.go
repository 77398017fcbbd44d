package nativehost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/crumbsapp/crumbs/common"
	"github.com/crumbsapp/crumbs/internal/cleanup"
	"github.com/crumbsapp/crumbs/internal/rules"
	"github.com/crumbsapp/crumbs/pkg/logger"
	"github.com/goccy/go-json"
)

// Service is the set of operations the extension can call. *api.Api
// implements it.
type Service interface {
	Version() *common.VersionResponse
	Groups(ctx context.Context, p common.GroupsParams) (*common.GroupsResponse, error)
	ListRules(ctx context.Context) (*common.RulesResponse, error)
	AddRule(ctx context.Context, p common.RuleParams) (*common.RuleResponse, error)
	RemoveRule(ctx context.Context, expression string) error
	FindRule(ctx context.Context, expression string) (*common.FindResponse, error)
	ValidateExpression(expression string) *common.ValidateResponse
	ClearTemporary(ctx context.Context) (*common.ClearResponse, error)
	SetOptions(ctx context.Context, p common.OptionsParams) (*rules.Options, error)
	Classify(ctx context.Context, p common.ClassifyParams) (*common.ClassifyResponse, error)
	Badge(t cleanup.Type) cleanup.Badge
}

// Host reads requests from stdin and writes responses to stdout, one at a
// time, until the browser closes the pipe.
type Host struct {
	svc    Service
	log    logger.Logger
	stdin  io.Reader
	stdout io.Writer
}

func NewHost(svc Service, l logger.Logger) *Host {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Host{
		svc:    svc,
		log:    l,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// Run serves requests until EOF on stdin or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := h.processOneMessage(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (h *Host) processOneMessage(ctx context.Context) error {
	data, err := ReadMessage(h.stdin)
	if err != nil {
		return err
	}
	req, err := ParseRequest(data)
	if err != nil {
		h.log.Warning("invalid request: %v", err)
		return WriteMessage(h.stdout, MakeErrorResponse(0, fmt.Errorf("invalid request: %w", err)))
	}
	return WriteMessage(h.stdout, h.handleRequest(ctx, req))
}

// decode unmarshals the request message into v. An absent message leaves
// v at its zero value when optional is set.
func decode(req *Request, v any, optional bool) error {
	if len(req.Message) == 0 {
		if optional {
			return nil
		}
		return fmt.Errorf("%s: message is required", req.Method)
	}
	if err := json.Unmarshal(req.Message, v); err != nil {
		return fmt.Errorf("invalid %s params: %w", req.Method, err)
	}
	return nil
}

func (h *Host) handleRequest(ctx context.Context, req *Request) []byte {
	var (
		result any
		err    error
	)

	switch req.Method {
	case common.METHOD_VERSION:
		result = h.svc.Version()

	case common.METHOD_COOKIE_GROUPS:
		var p common.GroupsParams
		if err = decode(req, &p, true); err == nil {
			result, err = h.svc.Groups(ctx, p)
		}

	case common.METHOD_RULES_LIST:
		result, err = h.svc.ListRules(ctx)

	case common.METHOD_RULES_ADD:
		var p common.RuleParams
		if err = decode(req, &p, false); err == nil {
			result, err = h.svc.AddRule(ctx, p)
		}

	case common.METHOD_RULES_REMOVE:
		var p common.ExpressionParams
		if err = decode(req, &p, false); err == nil {
			if err = h.svc.RemoveRule(ctx, p.Expression); err == nil {
				result = map[string]bool{"success": true}
			}
		}

	case common.METHOD_RULES_FIND:
		var p common.ExpressionParams
		if err = decode(req, &p, false); err == nil {
			result, err = h.svc.FindRule(ctx, p.Expression)
		}

	case common.METHOD_RULES_VALIDATE:
		var p common.ExpressionParams
		if err = decode(req, &p, false); err == nil {
			result = h.svc.ValidateExpression(p.Expression)
		}

	case common.METHOD_RULES_CLEAR_TMP:
		result, err = h.svc.ClearTemporary(ctx)

	case common.METHOD_OPTIONS_SET:
		var p common.OptionsParams
		if err = decode(req, &p, false); err == nil {
			result, err = h.svc.SetOptions(ctx, p)
		}

	case common.METHOD_CLASSIFY:
		var p common.ClassifyParams
		if err = decode(req, &p, false); err == nil {
			result, err = h.svc.Classify(ctx, p)
		}

	case common.METHOD_BADGE:
		var p common.BadgeParams
		if err = decode(req, &p, false); err == nil {
			result = h.svc.Badge(p.Type)
		}

	default:
		err = fmt.Errorf("unknown method: %s", req.Method)
	}

	if err != nil {
		if !errors.Is(err, rules.ErrRuleExists) {
			h.log.Warning("%s failed: %v", req.Method, err)
		}
		return MakeErrorResponse(req.ID, err)
	}
	resp := MakeSuccessResponse(req.ID, result)
	if len(resp) > MaxMessageSize {
		h.log.Warning("%s response too large: %d bytes", req.Method, len(resp))
		return MakeErrorResponse(req.ID, fmt.Errorf("%w: %d bytes (max %d), request fewer groups with offset and limit",
			ErrResponseTooLarge, len(resp), MaxMessageSize))
	}
	return resp
}
