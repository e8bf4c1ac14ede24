package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/darkclainer/bilex/pkg/lexicon"
	"github.com/darkclainer/bilex/pkg/translator"
)

const (
	typeWord     = "word"
	typeSentence = "sentence"

	debugSampleSize = 10
	maxBatchSize    = 100
	maxRequestBytes = 1 << 20
)

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	Type       string `json:"type"`
}

type TranslateResponse struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message,omitempty"`
	Original     string          `json:"original,omitempty"`
	SourceLang   string          `json:"source_lang,omitempty"`
	Type         string          `json:"type,omitempty"`
	Translations []lexicon.Entry `json:"translations,omitempty"`
	Translation  string          `json:"translation,omitempty"`
	Mode         translator.Mode `json:"mode,omitempty"`
	Suggestions  []string        `json:"suggestions,omitempty"`
}

type BatchRequest struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"source_lang"`
}

type BatchResponse struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message,omitempty"`
	Translations []translator.Sentence `json:"translations,omitempty"`
}

type SuggestionsResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions"`
}

type DictionaryResponse struct {
	Success bool                  `json:"success"`
	Stats   translator.Statistics `json:"stats"`
}

type DebugResponse struct {
	Success          bool                       `json:"success"`
	SampleEntries    map[string][]lexicon.Entry `json:"sample_entries"`
	TotalSourceWords int                        `json:"total_source_words"`
	TotalTargetWords int                        `json:"total_target_words"`
}

type HealthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	translator.Health
}

func (s *Server) handleTranslate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			s.respondJSON(w, &TranslateResponse{Message: "Method not allowed"}, http.StatusMethodNotAllowed)
			return
		}
		var request TranslateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&request); err != nil {
			s.respondJSON(w, &TranslateResponse{Message: "No data provided"}, http.StatusBadRequest)
			return
		}
		text := strings.TrimSpace(request.Text)
		if text == "" {
			s.respondJSON(w, &TranslateResponse{Message: "No text provided"}, http.StatusBadRequest)
			return
		}
		direction, err := s.translator.Direction(request.SourceLang)
		if err != nil {
			s.respondJSON(w, &TranslateResponse{Message: err.Error(), Original: text}, http.StatusBadRequest)
			return
		}
		response := TranslateResponse{
			Original:   text,
			SourceLang: request.SourceLang,
		}
		switch strings.ToLower(request.Type) {
		case "", typeWord:
			response.Type = typeWord
			word := s.translator.Lookup(text, direction)
			if word.NotFound {
				response.Message = "Word \"" + text + "\" not found in dictionary"
				response.Suggestions = word.Suggestions
				break
			}
			response.Success = true
			response.Translations = word.Senses
		case typeSentence:
			response.Type = typeSentence
			sentence := s.translator.TranslateSentence(r.Context(), text, direction)
			response.Success = true
			response.Translation = sentence.Translation
			response.Mode = sentence.Mode
		default:
			s.respondJSON(w, &TranslateResponse{
				Message:  "Unknown translation type " + strconv.Quote(request.Type),
				Original: text,
			}, http.StatusBadRequest)
			return
		}
		s.respondJSON(w, &response, http.StatusOK)
	}
}

func (s *Server) handleTranslateBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			s.respondJSON(w, &BatchResponse{Message: "Method not allowed"}, http.StatusMethodNotAllowed)
			return
		}
		var request BatchRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&request); err != nil {
			s.respondJSON(w, &BatchResponse{Message: "No data provided"}, http.StatusBadRequest)
			return
		}
		if len(request.Texts) == 0 || len(request.Texts) > maxBatchSize {
			s.respondJSON(w, &BatchResponse{
				Message: "Number of texts must be between 1 and " + strconv.Itoa(maxBatchSize),
			}, http.StatusBadRequest)
			return
		}
		direction, err := s.translator.Direction(request.SourceLang)
		if err != nil {
			s.respondJSON(w, &BatchResponse{Message: err.Error()}, http.StatusBadRequest)
			return
		}
		s.respondJSON(w, &BatchResponse{
			Success:      true,
			Translations: s.translator.TranslateBatch(r.Context(), request.Texts, direction),
		}, http.StatusOK)
	}
}

func (s *Server) handleSuggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		query := r.URL.Query()
		direction, err := s.translator.Direction(query.Get("lang"))
		if err != nil {
			s.respondJSON(w, &SuggestionsResponse{Message: err.Error(), Suggestions: []string{}}, http.StatusBadRequest)
			return
		}
		limit := 0
		if rawLimit := query.Get("limit"); rawLimit != "" {
			limit, err = strconv.Atoi(rawLimit)
			if err != nil || limit < 1 {
				s.respondJSON(w, &SuggestionsResponse{Message: "Bad limit", Suggestions: []string{}}, http.StatusBadRequest)
				return
			}
		}
		s.respondJSON(w, &SuggestionsResponse{
			Success:     true,
			Suggestions: s.translator.Suggest(query.Get("q"), direction, limit),
		}, http.StatusOK)
	}
}

func (s *Server) handleDictionary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		s.respondJSON(w, &DictionaryResponse{
			Success: true,
			Stats:   s.translator.Statistics(),
		}, http.StatusOK)
	}
}

func (s *Server) handleDebug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		stats := s.translator.Statistics()
		s.respondJSON(w, &DebugResponse{
			Success:          true,
			SampleEntries:    s.translator.Sample(debugSampleSize),
			TotalSourceWords: stats.SourceWords,
			TotalTargetWords: stats.TargetWords,
		}, http.StatusOK)
	}
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		// server is only built over a loaded dictionary
		health := s.translator.Health(r.Context())
		s.logger.Debug("health checked", zap.Bool("neural_available", health.NeuralAvailable))
		s.respondJSON(w, &HealthResponse{
			Success: true,
			Status:  "healthy",
			Health:  health,
		}, http.StatusOK)
	}
}
