package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"scriptgen/internal/generator"
	"scriptgen/internal/session"
)

// Server — HTTP сервер формы сбора артефактов и запуска генерации
type Server struct {
	sessions     *session.Manager
	generator    *generator.Generator
	refactorer   *generator.Refactorer
	artifactsDir string
	port         int
	server       *http.Server
	startTime    time.Time
}

func NewServer(sessions *session.Manager, gen *generator.Generator, ref *generator.Refactorer, artifactsDir string, port int) *Server {
	return &Server{
		sessions:     sessions,
		generator:    gen,
		refactorer:   ref,
		artifactsDir: artifactsDir,
		port:         port,
		startTime:    time.Now(),
	}
}

// Start запускает веб-сервер
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/artifacts", s.handleArtifacts)
	mux.HandleFunc("/mapping", s.handleMapping)
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/refactor", s.handleRefactor)
	mux.HandleFunc("/end", s.handleEndSession)
	mux.HandleFunc("/", s.handleRoot)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("🌐 Starting scriptgen web server on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

// Stop останавливает веб-сервер
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

const sessionCookie = "scriptgen_session"

// currentSession возвращает сессию запроса, создавая новую при необходимости
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) *session.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if sess := s.sessions.GetSession(cookie.Value); sess != nil {
			sess.Touch()
			return sess
		}
	}

	sess := s.sessions.CreateSession()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
	})
	return sess
}
