package workers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shramik-saathi/backend/internal/models"
	"github.com/shramik-saathi/backend/internal/providers/stt"
	"github.com/shramik-saathi/backend/internal/services"
)

// VoiceWorkerPool consumes queued voice queries, transcribes them, and runs
// the transcript through the FAQ matching engine. Results are published on
// the per-connection channels the WebSocket handler forwards. Each voice
// query logs exactly once, inside ChatService like any text query.
type VoiceWorkerPool struct {
	Redis      *redis.Client
	STT        stt.Provider
	Chat       services.ChatService
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *VoiceWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.STT == nil || p.Chat == nil {
		return errors.New("VoiceWorkerPool missing dependency: Redis/STT/Chat must be set")
	}
	if p.Stream == "" {
		p.Stream = "voice:stream"
	}
	if p.Group == "" {
		p.Group = "voice-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 5
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *VoiceWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

// sttLanguage maps the app language codes to BCP-47 recognizer codes.
func sttLanguage(v string) string {
	switch strings.TrimSpace(v) {
	case models.LanguageHI:
		return "hi-IN"
	case "", models.LanguageEN, models.LanguageHinglish:
		return "en-IN"
	default:
		return v
	}
}

func (p *VoiceWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	getStr := func(k string) string {
		v, ok := msg.Values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	connID := getStr("conn_id")
	userID := getStr("user_id")
	chunkIndexStr := getStr("chunk_index")
	if connID == "" || userID == "" || chunkIndexStr == "" {
		return
	}
	chunkIndex, _ := strconv.ParseInt(chunkIndexStr, 10, 64)

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":    msg.ID,
		"conn_id":     connID,
		"user_id":     userID,
		"chunk_index": chunkIndex,
	})

	respCh := "voice:" + connID + ":response"
	statusCh := "voice:" + connID + ":status"

	fail := func(message string) {
		_ = p.Redis.Publish(ctx, statusCh,
			`{"type":"status","status":"failed","message":"`+message+`","chunk_index":`+strconv.FormatInt(chunkIndex, 10)+`}`).Err()
	}

	language := strings.TrimSpace(getStr("language"))
	if language == "" {
		language = models.LanguageEN
	}

	// Fetch audio
	var audioBytes []byte
	if b64 := getStr("audio_base64"); b64 != "" {
		raw := b64
		if i := strings.Index(raw, ","); i >= 0 {
			raw = raw[i+1:] // strip data:...;base64,
		}
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			log.WithError(err).Warn("base64 decode failed")
			fail("invalid audio_base64")
			return
		}
		audioBytes = decoded
	} else if url := getStr("audio_url"); url != "" {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			log.WithError(err).Warn("audio_url fetch failed")
			fail("failed to fetch audio_url")
			return
		}
		defer resp.Body.Close()

		const maxBytes = 10 << 20
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
		if len(body) == 0 {
			fail("empty audio")
			return
		}
		audioBytes = body
	} else {
		return
	}

	// STT
	_ = p.Redis.Publish(ctx, statusCh,
		`{"type":"status","status":"processing","message":"transcribing","chunk_index":`+strconv.FormatInt(chunkIndex, 10)+`}`).Err()

	text, conf, err := p.STT.Transcribe(ctx, audioBytes, sttLanguage(language))
	if err != nil {
		log.WithError(err).Error("stt failed")
		fail("transcription failed")
		return
	}
	if strings.TrimSpace(text) == "" {
		fail("could not understand audio")
		return
	}

	sttPayload, _ := json.Marshal(map[string]any{
		"type":        "transcript",
		"chunk_index": chunkIndex,
		"text":        text,
		"confidence":  conf,
	})
	_ = p.Redis.Publish(ctx, respCh, string(sttPayload)).Err()

	// FAQ match
	answer, err := p.Chat.Ask(ctx, models.ChatQuery{
		UserID:    userID,
		QueryText: text,
		Language:  language,
	})
	if err != nil {
		log.WithError(err).Error("chat engine failed")
		fail("failed to answer query")
		return
	}

	donePayload, _ := json.Marshal(map[string]any{
		"type":             "chat_response",
		"chunk_index":      chunkIndex,
		"bot_response":     answer.BotResponse,
		"status":           answer.Status,
		"language":         answer.Language,
		"similarity_score": answer.SimilarityScore,
	})
	_ = p.Redis.Publish(ctx, respCh, string(donePayload)).Err()
	_ = p.Redis.Publish(ctx, statusCh,
		`{"type":"status","status":"done","message":"query processed","chunk_index":`+strconv.FormatInt(chunkIndex, 10)+`}`).Err()
}
