package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// WSHandler serves the voice chat channel: audio chunks in, transcripts and
// FAQ answers out. Chunks are queued on a Redis stream; the voice worker
// pool publishes results back on per-connection pub/sub channels that this
// handler forwards to the socket.
type WSHandler struct {
	redis    *redis.Client
	stream   string
	upgrader websocket.Upgrader
}

func NewWSHandler(rdb *redis.Client, stream string) *WSHandler {
	if stream == "" {
		stream = "voice:stream"
	}
	return &WSHandler{
		redis:  rdb,
		stream: stream,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type        string `json:"type"`
	ChunkIndex  int64  `json:"chunk_index"`
	Language    string `json:"language"` // en|hi
	AudioBase64 string `json:"audio_base64"`
	AudioURL    string `json:"audio_url"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) ChatWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote a response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	connID := uuid.NewString()
	respCh := "voice:" + connID + ":response"
	statusCh := "voice:" + connID + ":status"

	pubsub := h.redis.Subscribe(ctx, respCh, statusCh)
	defer pubsub.Close()

	// reader: WS -> Redis stream
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				return
			}

			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"invalid json"}`))
				continue
			}

			switch msg.Type {
			case "voice_query":
				if msg.ChunkIndex <= 0 {
					_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"chunk_index must be > 0"}`))
					continue
				}
				if msg.AudioBase64 == "" && msg.AudioURL == "" {
					_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"audio_base64 or audio_url required"}`))
					continue
				}

				fields := map[string]any{
					"conn_id":     connID,
					"user_id":     userID,
					"language":    msg.Language,
					"chunk_index": strconv.FormatInt(msg.ChunkIndex, 10),
				}
				if msg.AudioBase64 != "" {
					fields["audio_base64"] = msg.AudioBase64
				}
				if msg.AudioURL != "" {
					fields["audio_url"] = msg.AudioURL
				}

				if err := h.redis.XAdd(ctx, &redis.XAddArgs{
					Stream: h.stream,
					Values: fields,
				}).Err(); err != nil {
					_ = wc.writeText([]byte(`{"type":"error","code":"INTERNAL","message":"failed to queue audio"}`))
				}

			case "ping":
				_ = wc.writeText([]byte(`{"type":"pong"}`))
			}
		}
	}()

	// writer: Redis pub/sub -> WS
	msgCh := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-readDone:
			return
		case m, okCh := <-msgCh:
			if !okCh {
				return
			}
			if err := wc.writeText([]byte(m.Payload)); err != nil {
				return
			}
		}
	}
}
