package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/darkclainer/bilex"
	"github.com/darkclainer/bilex/pkg/translator"
)

type Server struct {
	http.Server
	mux        http.ServeMux
	conf       *Config
	logger     *zap.Logger
	translator *translator.Translator
}

func New(logger *zap.Logger, conf *Config) (*Server, error) {
	s := Server{
		conf:   conf,
		logger: logger,
	}

	tr, err := bilex.Open(context.Background(), &conf.Config, logger)
	if err != nil {
		return nil, err
	}
	s.translator = tr

	s.mux.HandleFunc("/api/translate", s.middleLogging(s.handleTranslate()))
	s.mux.HandleFunc("/api/translate/batch", s.middleLogging(s.handleTranslateBatch()))
	s.mux.HandleFunc("/api/suggestions", s.middleLogging(s.handleSuggestions()))
	s.mux.HandleFunc("/api/dictionary", s.middleLogging(s.handleDictionary()))
	s.mux.HandleFunc("/api/debug", s.middleLogging(s.handleDebug()))
	s.mux.HandleFunc("/api/health", s.middleLogging(s.handleHealth()))
	s.mux.Handle("/metrics", promhttp.Handler())
	s.Addr = conf.Host
	s.Server.Handler = &s.mux
	return &s, nil
}

func (s *Server) Close(ctx context.Context) error {
	var reasons []string
	if serverErr := s.Server.Shutdown(ctx); serverErr != nil {
		reasons = append(reasons, "server shutdown failed: "+serverErr.Error())
	}
	if translatorErr := s.translator.Close(ctx); translatorErr != nil {
		reasons = append(reasons, "translator close failed: "+translatorErr.Error())
	}
	if len(reasons) > 0 {
		return fmt.Errorf("close failed because: %s", strings.Join(reasons, " AND "))
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, vPtr interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	buffer := new(bytes.Buffer)
	if err := json.NewEncoder(buffer).Encode(vPtr); err != nil {
		s.logger.Error("encoding failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"encoding error"}`))
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(buffer.Bytes())
}

func (s *Server) middleLogging(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Info("request",
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.String("client", r.RemoteAddr),
			zap.String("method", r.Method),
		)
		handler(w, r)
	}
}
