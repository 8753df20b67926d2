package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/apex-meme-lord/ewsclient/connection"
	"github.com/apex-meme-lord/ewsclient/ews"
	"github.com/apex-meme-lord/ewsclient/internal/mail"
)

type Server struct {
	port int

	logger      *slog.Logger
	mailHandler *mail.Handler
}

// NewServer wires the Exchange connection, the message service and the
// HTTP layer together from environment configuration.
func NewServer() (*http.Server, error) {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := connection.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load EWS config: %w", err)
	}
	conn, err := connection.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create EWS connection: %w", err)
	}

	messageService := ews.NewMessageService(conn, logger)
	mailService := mail.NewService(messageService)
	mailHandler := mail.NewHandler(mailService)

	s := &Server{
		port:        port,
		logger:      logger,
		mailHandler: mailHandler,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}
