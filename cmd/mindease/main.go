// Command mindease runs the MindEase web application.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mindease/go-mindease/internal/chat"
	"github.com/mindease/go-mindease/internal/config"
	"github.com/mindease/go-mindease/internal/db"
	"github.com/mindease/go-mindease/internal/emotion"
	"github.com/mindease/go-mindease/internal/history"
	"github.com/mindease/go-mindease/internal/session"
	"github.com/mindease/go-mindease/internal/spotify"
	"github.com/mindease/go-mindease/internal/tts"
	"github.com/mindease/go-mindease/internal/web"
	webfs "github.com/mindease/go-mindease/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	ctx := context.Background()

	// Build collaborators. A missing credential disables the collaborator;
	// the pipeline degrades per feature instead of refusing to start.
	interactionLog := logger(ctx, cfg)
	service := chat.NewService(
		textClassifier(cfg),
		faceClassifier(cfg),
		searcher(ctx, cfg),
		synthesizer(cfg),
		interactionLog,
		sessionStore(cfg),
	)

	// A database-backed log can also restore conversation history for
	// returning sessions.
	if dbLog, ok := interactionLog.(*history.DBLogger); ok {
		service = service.WithArchive(dbLog)

		if count, err := dbLog.CountSince(ctx, time.Now().Add(-24*time.Hour)); err == nil {
			log.Printf("Interaction log: %d interactions in the last 24h", count)
		}
	}

	// Create sub-filesystems for templates and static files
	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	// Create and start server
	server, err := web.NewServer(web.ServerConfig{
		Addr:        cfg.Addr,
		Service:     service,
		TemplatesFS: templates,
		StaticFS:    static,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}

func textClassifier(cfg *config.Config) emotion.TextClassifier {
	if cfg.EmotionAPIURL == "" {
		log.Println("Text emotion classifier disabled (EMOTION_API_URL not set)")
		return emotion.DisabledText{}
	}
	return emotion.NewTextClient(emotion.TextConfig{
		URL:   cfg.EmotionAPIURL,
		Token: cfg.EmotionAPIToken,
	})
}

func faceClassifier(cfg *config.Config) emotion.FaceClassifier {
	if cfg.FaceAPIURL == "" {
		log.Println("Face emotion classifier disabled (FACE_API_URL not set)")
		return emotion.DisabledFace{}
	}
	return emotion.NewFaceClient(emotion.FaceConfig{URL: cfg.FaceAPIURL})
}

func searcher(ctx context.Context, cfg *config.Config) spotify.Searcher {
	if !cfg.SpotifyEnabled() {
		log.Println("Music search disabled (SPOTIFY_ID/SPOTIFY_SECRET not set)")
		return spotify.Disabled{}
	}

	client, err := spotify.NewClientCredentials(ctx, cfg.SpotifyID, cfg.SpotifySecret)
	if err != nil {
		log.Printf("Warning: Spotify init failed, music search disabled: %v", err)
		return spotify.Disabled{}
	}
	return client
}

func synthesizer(cfg *config.Config) tts.Synthesizer {
	if cfg.TTSAPIURL == "" {
		log.Println("Speech synthesis disabled (TTS_API_URL not set)")
		return tts.Disabled{}
	}
	return tts.NewClient(tts.Config{URL: cfg.TTSAPIURL})
}

func logger(ctx context.Context, cfg *config.Config) history.Logger {
	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: database unavailable, falling back to CSV log: %v", err)
		} else {
			return history.NewDBLogger(database)
		}
	}

	csvLogger, err := history.NewCSVLogger(cfg.ChatLog)
	if err != nil {
		log.Printf("Warning: chat log unavailable, interactions will not be recorded: %v", err)
		return history.Discard{}
	}
	return csvLogger
}

func sessionStore(cfg *config.Config) session.Store {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return session.NewRedisStore(client)
}
