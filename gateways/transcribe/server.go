package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"google.golang.org/grpc"

	config "github.com/xilidan/audio-transcriber/config/transcribe"
	"github.com/xilidan/audio-transcriber/gateways/transcribe/clients/openai"
	"github.com/xilidan/audio-transcriber/gateways/transcribe/handler"
	healthServer "github.com/xilidan/audio-transcriber/services/transcribe/server"
	"github.com/xilidan/audio-transcriber/services/transcribe/storage"
	"github.com/xilidan/audio-transcriber/services/transcribe/usecase"
)

// writeSlack is added to the pipeline timeout so a timed out run can still write its error body.
const writeSlack = 30 * time.Second

type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	handler *handler.Handler
	health  *healthServer.Server
}

func New(cfg *config.Config, log *slog.Logger) (*Server, error) {
	log.Info("creating new transcribe server")
	log.Debug("server config",
		slog.Int("port", cfg.Port),
		slog.Int("grpc_port", cfg.GRPCPort),
		slog.Bool("openai_key_configured", cfg.OpenAI.APIKeyConfigured()),
		slog.String("profile", cfg.Profile),
		slog.Duration("request_timeout", cfg.RequestTimeout))

	if !cfg.OpenAI.APIKeyConfigured() {
		log.Warn("OPENAI_API_KEY is not configured, transcription requests will fail")
	}

	client := openai.NewClient(&cfg.OpenAI, cfg.RequestTimeout)
	transcriber := openai.NewTranscriber(client, cfg.OpenAI.TranscriptionModel, cfg.OpenAI.TranscriptionLang, log)
	summarizer := openai.NewSummarizer(client, cfg.OpenAI.SummaryModel, cfg.OpenAI.SummaryTemperature, cfg.OpenAI.SummaryMaxTokens, log)
	log.Info("openai clients created successfully")

	stg := storage.New(cfg.TempDir, nil)
	usc := usecase.New(transcriber, summarizer, stg, cfg.RequestTimeout)

	h := handler.New(usc, handler.Options{
		MaxUploadSize:    cfg.MaxUploadSize,
		APIKeyConfigured: cfg.OpenAI.APIKeyConfigured(),
		Profile:          cfg.Profile,
	}, log)

	log.Info("transcribe server instance created successfully")
	return &Server{
		cfg:     cfg,
		log:     log,
		handler: h,
		health:  healthServer.NewServerOptions(),
	}, nil
}

// Router builds the HTTP handler with middleware and routes.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.handler.RegisterRoutes(router)
	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting transcribe server")

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	writeTimeout := s.cfg.RequestTimeout + writeSlack
	s.log.Debug("creating HTTP server",
		slog.String("addr", addr),
		slog.Duration("read_timeout", writeTimeout),
		slog.Duration("write_timeout", writeTimeout),
		slog.Duration("idle_timeout", 60*time.Second))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       writeTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 2)

	grpcServer, err := s.startGRPC(serverErrors)
	if err != nil {
		return err
	}

	go func() {
		s.log.Info("transcribe gateway started", slog.String("address", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()
	s.health.Resume()

	select {
	case err := <-serverErrors:
		s.log.Error("server error received", slog.String("error", err.Error()))
		s.shutdown(srv, grpcServer)
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.log.Info("start shutdown", slog.String("reason", context.Cause(ctx).Error()))
	}

	if err := s.shutdown(srv, grpcServer); err != nil {
		return err
	}
	s.log.Info("server stopped cleanly")
	return nil
}

func (s *Server) startGRPC(serverErrors chan<- error) (*grpc.Server, error) {
	if s.cfg.GRPCPort <= 0 {
		s.log.Debug("grpc health server disabled")
		return nil, nil
	}

	grpcServer, err := s.health.NewServer()
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc server: %w", err)
	}

	address := fmt.Sprintf(":%d", s.cfg.GRPCPort)
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on grpc port: %w", err)
	}

	go func() {
		serverErrors <- grpcServer.Serve(lis)
	}()
	s.log.Info("grpc health service started", slog.String("address", address))
	return grpcServer, nil
}

func (s *Server) shutdown(srv *http.Server, grpcServer *grpc.Server) error {
	s.health.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.log.Info("shutting down HTTP server gracefully", slog.Duration("timeout", s.cfg.ShutdownTimeout))
	err := srv.Shutdown(ctx)
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("graceful shutdown failed", slog.String("error", err.Error()))
		s.log.Warn("forcing server close")
		srv.Close()
		return fmt.Errorf("failed to gracefully shutdown server: %w", err)
	}
	s.log.Info("server shutdown completed successfully")
	return nil
}
