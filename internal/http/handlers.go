package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"healbot/internal/core"
	"healbot/internal/metrics"
	"healbot/internal/speech"
	"healbot/pkg"
)

// Store is the persistence surface the HTTP layer needs. *db.Repository
// satisfies it.
type Store interface {
	core.SessionStore
	ClearTranscript(ctx context.Context, userID string) error
}

// Chatter produces one assistant reply per patient message.
// *core.ChatService satisfies it.
type Chatter interface {
	Chat(ctx context.Context, userID, message string) (string, int, error)
}

// Server bundles the dependencies required by the HTTP handlers.
type Server struct {
	Store         Store
	Chat          Chatter
	Transcriber   speech.Transcriber
	Synthesizer   speech.Synthesizer
	MaxAudioBytes int64
	SpeechLimiter *IPRateLimiter
}

// Router wires every endpoint onto a chi mux with the shared middleware
// stack applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(metrics.Middleware)

	r.Get("/", s.handleRoot)
	r.Post("/chat", s.handleChat)
	r.Get("/chat-history/{user_id}", s.handleGetHistory)
	r.Delete("/chat-history/{user_id}", s.handleClearHistory)
	r.Post("/patient-data/{user_id}", s.handlePutPatientData)
	r.Get("/patient-data/{user_id}", s.handleGetPatientData)
	r.Get("/patient-summary/{user_id}", s.handleGetSummary)
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		if s.SpeechLimiter != nil {
			r.Use(s.SpeechLimiter.Middleware)
		}
		r.Post("/tts", s.handleTTS)
		r.Post("/stt", s.handleSTT)
	})

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Dr. HealBot backend is running",
		"status":  "healthy",
	})
}

// handleChat runs one consultation exchange for a user.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req pkg.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.UserID == "" {
		req.UserID = "default_user"
	}

	reply, count, err := s.Chat.Chat(r.Context(), req.UserID, req.Message)
	if err != nil {
		slog.Error("chat exchange failed", "user_id", req.UserID, "error", err)
		respondError(w, http.StatusBadGateway, "failed to generate a reply")
		return
	}
	respondJSON(w, http.StatusOK, pkg.ChatResponse{
		Reply:        reply,
		UserID:       req.UserID,
		MessageCount: count,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	transcript, err := s.Store.GetTranscript(r.Context(), userID)
	if err != nil {
		slog.Error("load transcript failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load chat history")
		return
	}
	if transcript == nil {
		transcript = []pkg.Turn{}
	}
	respondJSON(w, http.StatusOK, pkg.HistoryResponse{
		UserID:       userID,
		ChatHistory:  transcript,
		MessageCount: len(transcript),
	})
}

// handleClearHistory removes the transcript only. The patient record is
// kept so a fresh conversation still knows the patient.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if err := s.Store.ClearTranscript(r.Context(), userID); err != nil {
		slog.Error("clear transcript failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to clear chat history")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "chat history cleared",
		"user_id": userID,
	})
}

// handlePutPatientData replaces the stored record for a user with the
// uploaded document.
func (s *Server) handlePutPatientData(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	var req pkg.PatientDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid patient data: "+err.Error())
		return
	}
	rec := &pkg.PatientRecord{
		Name:        req.Name,
		Profile:     req.Profile,
		Labs:        req.Labs,
		LastUpdated: time.Now().UTC(),
	}
	if err := s.Store.PutPatientRecord(r.Context(), userID, rec); err != nil {
		slog.Error("store patient record failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to store patient data")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "patient data stored",
		"user_id": userID,
	})
}

func (s *Server) handleGetPatientData(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	rec, err := s.Store.GetPatientRecord(r.Context(), userID)
	if err != nil {
		slog.Error("load patient record failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load patient data")
		return
	}
	if rec == nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"message": "no patient data found"})
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// handleGetSummary renders the patient record as the same digest the
// model sees, alongside the raw document.
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	rec, err := s.Store.GetPatientRecord(r.Context(), userID)
	if err != nil {
		slog.Error("load patient record failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load patient data")
		return
	}
	if rec == nil {
		// Absent data is not an error here: the summary endpoint always
		// answers 200 and signals absence in the summary text itself.
		respondJSON(w, http.StatusOK, pkg.SummaryResponse{Summary: "No patient data available"})
		return
	}
	respondJSON(w, http.StatusOK, pkg.SummaryResponse{
		Summary: core.Summarize(rec),
		RawData: rec,
	})
}

// handleTTS synthesizes speech for a piece of text and streams it back as
// MP3.
func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req pkg.TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	audio, err := s.Synthesizer.Synthesize(r.Context(), req.Text, req.LanguageCode)
	metrics.RecordSpeechRequest("tts", err)
	if err != nil {
		slog.Error("speech synthesis failed", "error", err)
		respondError(w, http.StatusBadGateway, "speech synthesis failed")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `inline; filename="speech.mp3"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		slog.Warn("write audio response failed", "error", err)
	}
}

// handleSTT accepts an uploaded audio file and returns the recognized
// text. The upload is spooled to a temp file for the transcription
// client and removed afterwards.
func (s *Server) handleSTT(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.MaxAudioBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	if header.Size > s.MaxAudioBytes {
		respondError(w, http.StatusRequestEntityTooLarge, "audio file too large")
		return
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !speech.SupportedUploadFormat(ct) {
		respondError(w, http.StatusBadRequest, "unsupported audio format: "+ct)
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".wav"
	}
	tempPath := filepath.Join(os.TempDir(), "healbot_"+uuid.New().String()+ext)
	tempFile, err := os.Create(tempPath)
	if err != nil {
		slog.Error("create temp audio file failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to process audio")
		return
	}
	defer os.Remove(tempPath)

	if _, err := io.Copy(tempFile, file); err != nil {
		tempFile.Close()
		slog.Error("spool audio upload failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to process audio")
		return
	}
	tempFile.Close()

	language := r.FormValue("language")
	text, err := s.Transcriber.Transcribe(r.Context(), tempPath, language)
	metrics.RecordSpeechRequest("stt", err)
	if errors.Is(err, speech.ErrUnrecognized) {
		respondError(w, http.StatusBadRequest, "could not understand the audio")
		return
	}
	if err != nil {
		slog.Error("transcription failed", "error", err)
		respondError(w, http.StatusBadGateway, "transcription failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"transcript": text})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
