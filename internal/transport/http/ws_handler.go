package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"cert-quiz-service/internal/app"
	"cert-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

// NameStore persists participant names across sessions; storage is a
// collaborator concern, not part of the scoring core.
type NameStore interface {
	Save(ctx context.Context, participantID, name string) error
	Load(ctx context.Context, participantID string) (string, bool, error)
}

type WSHandler struct {
	service       *app.AttemptService
	names         NameStore
	defaultBankID string
	upgrader      websocket.Upgrader
}

func NewWSHandler(service *app.AttemptService, names NameStore, defaultBankID string) *WSHandler {
	return &WSHandler{
		service:       service,
		names:         names,
		defaultBankID: defaultBankID,
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

type answerPayload struct {
	QuestionID    string `json:"questionId"`
	OriginalIndex int    `json:"originalIndex"`
}

type answerAck struct {
	QuestionID    string `json:"questionId"`
	OriginalIndex int    `json:"originalIndex"`
}

type resultPayload struct {
	domain.ScoreResult
	Reason string `json:"reason,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS runs one attempt over a websocket: the connection opens with a
// quiz message, records answer messages, and closes the attempt on
// submit or when the time limit forces one.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bankId")
	if bankID == "" {
		bankID = h.defaultBankID
	}
	participantID := r.URL.Query().Get("participantId")
	name := r.URL.Query().Get("name")
	if name == "" && participantID != "" && h.names != nil {
		if stored, ok, err := h.names.Load(r.Context(), participantID); err == nil && ok {
			name = stored
		}
	}
	if name == "" {
		http.Error(w, "missing name (or no stored name for participantId)", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	started, err := h.service.Start(r.Context(), bankID, name)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.End(started.AttemptID)

	if participantID != "" && h.names != nil {
		// best-effort: a failed save must not block the attempt
		if err := h.names.Save(r.Context(), participantID, name); err != nil {
			log.Printf("save participant name: %v", err)
		}
	}

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// The timer goroutine also produces messages, so sends race with the
	// read loop closing the channel on disconnect; safeSend serializes them.
	var sendMu sync.Mutex
	sendClosed := false
	safeSend := func(msg outboundMessage[any]) {
		sendMu.Lock()
		defer sendMu.Unlock()
		if !sendClosed {
			send <- msg
		}
	}

	safeSend(outboundMessage[any]{Type: "quiz", Payload: started})

	// Submission can come from the participant or from the timer; both
	// drive the same scoring path and only the first one reports.
	var resultOnce sync.Once
	finish := func(timedOut bool) {
		resultOnce.Do(func() {
			result, err := h.service.Submit(started.AttemptID)
			if err != nil {
				safeSend(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				return
			}
			safeSend(outboundMessage[any]{Type: "result", Payload: resultPayload{
				ScoreResult: result,
				Reason:      h.service.FailureReason(result, timedOut),
			}})
		})
	}

	timer := time.AfterFunc(time.Until(started.Deadline), func() { finish(true) })
	defer timer.Stop()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				safeSend(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			if err := h.service.Answer(started.AttemptID, payload.QuestionID, payload.OriginalIndex); err != nil {
				safeSend(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			safeSend(outboundMessage[any]{Type: "answerAck", Payload: answerAck{
				QuestionID:    payload.QuestionID,
				OriginalIndex: payload.OriginalIndex,
			}})
		case "submit":
			timer.Stop()
			finish(false)
		default:
			safeSend(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}

	sendMu.Lock()
	sendClosed = true
	sendMu.Unlock()
	close(send)
	<-writerDone
}
