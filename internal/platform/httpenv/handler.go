package httpenv

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/env"
)

const sessionHeader = "X-Session-ID"
const defaultSession = "default"

// Handler exposes reset/step/state for every session.
type Handler struct {
	Sessions *Sessions
	Logger   *log.Logger
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.GET("/healthz", h.healthz)

	g := s.Group("/env")
	g.POST("/reset", h.reset)
	g.POST("/step", h.step)
	g.GET("/state", h.state)
	g.POST("/close", h.closeSession)
}

type resetRequest struct {
	Seed *int64 `json:"seed"`
}

type stepRequest struct {
	Action    string `json:"action"`
	Direction string `json:"direction"`
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.Sessions.Len(),
	})
}

func (h Handler) reset(_ context.Context, ctx *app.RequestContext) {
	var req resetRequest
	if err := decodeJSON(ctx, &req); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	id := sessionID(ctx)
	obs, metrics, err := h.Sessions.reset(id, req.Seed)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	h.logger().Debug("env reset", "session", id, "seeded", req.Seed != nil)
	ctx.JSON(consts.StatusOK, resetResponse{
		Session:     id,
		Observation: newObservationView(obs),
		Metrics:     newMetricsView(metrics),
	})
}

func (h Handler) step(_ context.Context, ctx *app.RequestContext) {
	var req stepRequest
	if err := decodeJSON(ctx, &req); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	sess, err := h.Sessions.get(sessionID(ctx))
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.env == nil {
		h.writeError(ctx, ErrSessionNotFound)
		return
	}

	action, err := resolveAction(req, sess.env.Arena().Snake().Direction())
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_action", err.Error())
		return
	}

	res, err := sess.env.Step(action)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, stepResponse{
		Observation: newObservationView(res.Observation),
		Reward:      res.Reward,
		Terminated:  res.Terminated,
		Truncated:   res.Truncated,
		Metrics:     newMetricsView(res.Metrics),
	})
}

func (h Handler) state(_ context.Context, ctx *app.RequestContext) {
	id := sessionID(ctx)
	sess, err := h.Sessions.get(id)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.env == nil {
		h.writeError(ctx, ErrSessionNotFound)
		return
	}

	ctx.JSON(consts.StatusOK, newStateResponse(id, sess.env))
}

func (h Handler) closeSession(_ context.Context, ctx *app.RequestContext) {
	id := sessionID(ctx)
	if !h.Sessions.Close(id) {
		h.writeError(ctx, ErrSessionNotFound)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"session": id, "closed": true})
}

// resolveAction accepts either a relative action or an absolute heading,
// which is turned into the action that reaches it from the current one.
func resolveAction(req stepRequest, heading engine.Direction) (engine.Action, error) {
	switch {
	case req.Action != "" && req.Direction != "":
		return 0, errors.New("give either action or direction, not both")
	case req.Action != "":
		return engine.ParseAction(req.Action)
	case req.Direction != "":
		d, err := engine.ParseDirection(strings.ToLower(req.Direction))
		if err != nil {
			return 0, err
		}
		return engine.ActionFor(heading, d), nil
	}
	return engine.ActionStraight, nil
}

func sessionID(ctx *app.RequestContext) string {
	id := strings.TrimSpace(string(ctx.GetHeader(sessionHeader)))
	if id == "" {
		return defaultSession
	}
	return id
}

func (h Handler) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

func (h Handler) writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, env.ErrEpisodeDone):
		writeErrorBody(ctx, consts.StatusConflict, "episode_done", err.Error())
	case errors.Is(err, ErrSessionNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, ErrTooManySessions):
		writeErrorBody(ctx, consts.StatusTooManyRequests, "too_many_sessions", err.Error())
	default:
		h.logger().Error("env request failed", "error", err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", err.Error())
	}
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
