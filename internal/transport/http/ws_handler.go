package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"element-quiz/internal/app"
	"element-quiz/internal/domain"
	"element-quiz/internal/quiz"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.QuizService
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log *slog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Mode       string      `json:"mode"`
	Element    int         `json:"element"`
	Kinds      []quiz.Kind `json:"kinds"`
	Categories []string    `json:"categories"`
	Length     int         `json:"length"`
}

type answerPayload struct {
	Option string `json:"option"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// conn tracks the single play a websocket drives.
type conn struct {
	ws        *websocket.Conn
	userID    string
	sessionID string
}

func (c *conn) send(typ string, payload any) error {
	return c.ws.WriteJSON(outboundMessage{Type: typ, Payload: payload})
}

func (c *conn) fail(message string) error {
	return c.send("error", errorPayload{Message: message})
}

// ServeWS upgrades HTTP requests to websockets and relays the quiz lifecycle:
// start, question, answer, advance and result in, question/answerResult/result/error out.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	ctx := r.Context()
	c := &conn{ws: ws, userID: userID}
	defer func() {
		if c.sessionID != "" {
			h.service.Abandon(context.WithoutCancel(ctx), c.sessionID)
		}
	}()

	for {
		var inbound inboundMessage
		if err := ws.ReadJSON(&inbound); err != nil {
			return
		}
		if err := h.dispatch(ctx, c, inbound); err != nil {
			h.log.Debug("ws write error", "user_id", userID, "error", err)
			return
		}
	}
}

// dispatch handles one inbound message; the returned error is a write failure.
func (h *WSHandler) dispatch(ctx context.Context, c *conn, inbound inboundMessage) error {
	switch inbound.Type {
	case "start":
		var payload startPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return c.fail("invalid start payload")
		}
		mode, err := domain.ParseMode(payload.Mode)
		if err != nil {
			return c.fail(err.Error())
		}
		if c.sessionID != "" {
			h.service.Abandon(ctx, c.sessionID)
			c.sessionID = ""
		}
		snap, err := h.service.Start(ctx, app.StartRequest{
			UserID:     c.userID,
			Mode:       mode,
			Element:    payload.Element,
			Kinds:      payload.Kinds,
			Categories: payload.Categories,
			Length:     payload.Length,
		})
		if err != nil {
			return c.fail(err.Error())
		}
		c.sessionID = snap.SessionID
		return c.send("question", snap)

	case "question":
		if c.sessionID == "" {
			return c.fail("no session started")
		}
		snap, err := h.service.Question(ctx, c.sessionID)
		if err != nil {
			return c.fail(err.Error())
		}
		return c.send("question", snap)

	case "answer":
		if c.sessionID == "" {
			return c.fail("no session started")
		}
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return c.fail("invalid answer payload")
		}
		res, err := h.service.Answer(ctx, c.sessionID, payload.Option)
		if err != nil {
			return c.fail(err.Error())
		}
		return c.send("answerResult", res)

	case "advance":
		if c.sessionID == "" {
			return c.fail("no session started")
		}
		snap, err := h.service.Advance(ctx, c.sessionID)
		if err != nil {
			// A play already in Score (its result write failed) finishes through Result.
			current, qerr := h.service.Question(ctx, c.sessionID)
			if qerr != nil || current.State != quiz.StateScore {
				return c.fail(err.Error())
			}
			return h.finish(ctx, c)
		}
		if snap.State != quiz.StateScore {
			return c.send("question", snap)
		}
		return h.finish(ctx, c)

	case "result":
		if c.sessionID == "" {
			return c.fail("no session started")
		}
		return h.finish(ctx, c)
	}
	return c.fail("unsupported message type")
}

// finish sends the recorded result and drops the play. When recording fails
// the play is kept so a later advance or result message can retry.
func (h *WSHandler) finish(ctx context.Context, c *conn) error {
	result, err := h.service.Result(ctx, c.sessionID)
	if err != nil {
		return c.fail(err.Error())
	}
	h.service.Abandon(ctx, c.sessionID)
	c.sessionID = ""
	return c.send("result", result)
}
