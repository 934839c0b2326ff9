package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"treehouse/internal/app/action"
	"treehouse/internal/app/ports"
	"treehouse/internal/app/replay"
	"treehouse/internal/app/status"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	ActionUC    action.UseCase
	StatusUC    status.UseCase
	ReplayUC    replay.UseCase
	KPI         kpiSnapshotProvider
	// AllowOrigin is echoed in CORS responses; empty means any origin.
	AllowOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigin))

	buddy := s.Group("/api/buddy")
	buddy.GET("/state", h.state)
	buddy.POST("/actions", h.action)
	buddy.GET("/actions", h.actionTypes)
	buddy.GET("/events", h.events)

	s.GET("/ops/kpi", h.kpi)
	s.GET("/healthz", h.healthz)
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	var body action.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.ActionUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) actionTypes(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"types": action.SupportedTypes()})
}

func (h Handler) events(c context.Context, ctx *app.RequestContext) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeError(ctx, replay.ErrInvalidRequest)
		return
	}
	occurredFrom, err := queryInt64(ctx, "occurred_from")
	if err != nil {
		writeError(ctx, replay.ErrInvalidRequest)
		return
	}
	occurredTo, err := queryInt64(ctx, "occurred_to")
	if err != nil {
		writeError(ctx, replay.ErrInvalidRequest)
		return
	}

	var types []string
	if raw := strings.TrimSpace(ctx.Query("type")); raw != "" {
		types = strings.Split(raw, ",")
	}

	resp, err := h.ReplayUC.Execute(c, replay.Request{
		Limit:        limit,
		Types:        types,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func queryInt(ctx *app.RequestContext, key string) (int, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func queryInt64(ctx *app.RequestContext, key string) (int64, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, action.ErrInvalidActionParams):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_action_params", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
