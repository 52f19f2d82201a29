package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/config"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/normalizer"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/provider"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/router"
)

const (
	maxBodyBytes        = 1 << 20 // 1 MiB
	shutdownGracePeriod = 10 * time.Second
	readTimeout         = 30 * time.Second
	writeTimeout        = 90 * time.Second
	idleTimeout         = 120 * time.Second
)

type Server struct {
	cfg     config.Config
	router  *router.Router
	app     *echo.Echo
	address string
}

// New constructs an HTTP server wired with routing and middleware.
func New(cfg config.Config, rt *router.Router) (*Server, error) {
	if rt == nil {
		return nil, errors.New("router must not be nil")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency: true,
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"error", v.Error,
			)
			return nil
		},
	}))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	srv := &Server{
		cfg:     cfg,
		router:  rt,
		app:     e,
		address: fmt.Sprintf(":%d", cfg.Server.Port),
	}

	srv.registerRoutes()

	return srv, nil
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server", "addr", s.address)

	httpServer := &http.Server{
		Addr:         s.address,
		Handler:      s.app,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.app.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := s.app.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		slog.Info("server shutdown complete")
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) registerRoutes() {
	s.app.GET("/api/health", s.handleHealth)
	s.app.GET("/api/models", s.handleListModels)
	s.app.GET("/api/languages", s.handleListLanguages)
	s.app.POST("/api/chat", s.handleChat)
	s.app.POST("/api/translate", s.handleTranslate)
	s.app.POST("/api/detect-language", s.handleDetectLanguage)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, s.router.Health())
}

func (s *Server) handleListModels(c echo.Context) error {
	return c.JSON(http.StatusOK, s.router.ListModels())
}

func (s *Server) handleListLanguages(c echo.Context) error {
	return c.JSON(http.StatusOK, s.router.ListLanguages())
}

type chatRequest struct {
	Provider models.ProviderID `json:"provider"`
	Model    string            `json:"model"`
	Message  string            `json:"message"`
	History  []models.ChatTurn `json:"history"`
}

func (s *Server) handleChat(c echo.Context) error {
	var req chatRequest
	if err := decodeRequestBody(c, &req); err != nil {
		return err
	}

	resp, err := s.router.Chat(c.Request().Context(), models.UniformChatRequest{
		Provider: req.Provider,
		Model:    req.Model,
		Message:  req.Message,
		History:  req.History,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

type translateRequest struct {
	Provider   models.ProviderID `json:"provider"`
	Model      string            `json:"model"`
	Text       string            `json:"text"`
	SourceLang string            `json:"source_lang"`
	TargetLang string            `json:"target_lang"`
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := decodeRequestBody(c, &req); err != nil {
		return err
	}

	resp, err := s.router.Translate(c.Request().Context(), models.UniformTranslateRequest{
		Provider:   req.Provider,
		Model:      req.Model,
		Text:       req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

type detectRequest struct {
	Provider models.ProviderID `json:"provider"`
	Model    string            `json:"model"`
	Text     string            `json:"text"`
}

func (s *Server) handleDetectLanguage(c echo.Context) error {
	var req detectRequest
	if err := decodeRequestBody(c, &req); err != nil {
		return err
	}

	resp, err := s.router.DetectLanguage(c.Request().Context(), req.Provider, req.Model, req.Text)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func decodeRequestBody[T any](c echo.Context, target *T) error {
	req := c.Request()
	defer req.Body.Close()

	req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBodyBytes)

	decoder := json.NewDecoder(req.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return requestError{
				Status:  http.StatusBadRequest,
				Message: "request body is required",
			}
		}
		return requestError{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("invalid JSON payload: %v", err),
		}
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return requestError{
			Status:  http.StatusBadRequest,
			Message: "request body must contain a single JSON object",
		}
	}
	return nil
}

type requestError struct {
	Status  int
	Message string
}

func (e requestError) Error() string {
	return e.Message
}

type errorBody struct {
	Error string `json:"error"`
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var reqErr requestError
	if errors.As(err, &reqErr) {
		_ = c.JSON(reqErr.Status, errorBody{Error: reqErr.Message})
		return
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		_ = c.JSON(echoErr.Code, errorBody{Error: fmt.Sprintf("%v", echoErr.Message)})
		return
	}

	_ = c.JSON(http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

// toHTTPError maps the dispatch error taxonomy onto HTTP statuses: bad input,
// unavailable providers and unknown models are the caller's fault; upstream
// call failures surface as a bad gateway with the raw message.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, normalizer.ErrValidation),
		errors.Is(err, provider.ErrProviderUnavailable),
		errors.Is(err, provider.ErrUnknownModel):
		return requestError{Status: http.StatusBadRequest, Message: err.Error()}
	}

	var callErr *provider.CallError
	if errors.As(err, &callErr) {
		return requestError{Status: http.StatusBadGateway, Message: callErr.Error()}
	}

	return requestError{Status: http.StatusInternalServerError, Message: err.Error()}
}
