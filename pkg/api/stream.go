package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/carverauto/netdiag/pkg/models"
	"github.com/carverauto/netdiag/pkg/speedtest"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// upgrade switches to a websocket and returns a context that ends when the
// request does or the client goes away.
func upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, context.Context, context.CancelFunc, bool) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return nil, nil, nil, false
	}

	ctx, cancel := context.WithCancel(r.Context())

	go func() {
		defer cancel()

		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	return ws, ctx, cancel, true
}

func send(ws *websocket.Conn, msg StreamMessage) error {
	if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	if err := ws.WriteJSON(msg); err != nil {
		log.Printf("Failed to write websocket message: %v", err)
		return err
	}

	return nil
}

func closeSocket(ws *websocket.Conn) {
	deadline := time.Now().Add(writeWait)
	_ = ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = ws.Close()
}

func (s *Server) streamTrace(w http.ResponseWriter, r *http.Request) {
	if s.deps.NewTracer == nil {
		writeError(w, http.StatusServiceUnavailable, errNotConfigured)
		return
	}

	host := mux.Vars(r)["host"]

	ws, ctx, cancel, ok := upgrade(w, r)
	if !ok {
		return
	}

	defer cancel()
	defer closeSocket(ws)

	for hop, err := range s.deps.NewTracer().Trace(ctx, host) {
		if err != nil {
			_ = send(ws, StreamMessage{Type: MessageError, Error: err.Error()})
			return
		}

		if send(ws, StreamMessage{Type: MessageHop, Hop: &hop}) != nil {
			return
		}
	}

	_ = send(ws, StreamMessage{Type: MessageDone})
}

func (s *Server) streamSpeed(w http.ResponseWriter, r *http.Request) {
	if s.deps.Speed == nil {
		writeError(w, http.StatusServiceUnavailable, errNotConfigured)
		return
	}

	direction := models.TransferDirection(mux.Vars(r)["direction"])
	if direction != models.DirectionDownload && direction != models.DirectionUpload {
		writeError(w, http.StatusBadRequest, errUnknownDirection)
		return
	}

	ws, ctx, cancel, ok := upgrade(w, r)
	if !ok {
		return
	}

	defer cancel()
	defer closeSocket(ws)

	var run *speedtest.Run
	if direction == models.DirectionDownload {
		run = s.deps.Speed.Download(ctx)
	} else {
		run = s.deps.Speed.Upload(ctx)
	}

	alive := true

	for sample := range run.Progress() {
		if alive && send(ws, StreamMessage{Type: MessageProgress, Sample: &sample}) != nil {
			alive = false

			cancel()
		}
	}

	result, err := run.Wait()

	if s.deps.Throughput != nil {
		s.deps.Throughput.RecordThroughput(context.WithoutCancel(ctx), &result)
	}

	msg := StreamMessage{Type: MessageResult, Result: &result}
	if err != nil {
		msg.Error = err.Error()
	}

	_ = send(ws, msg)
}
