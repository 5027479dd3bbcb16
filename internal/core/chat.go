package core

import (
	"context"
	"fmt"
	"time"

	"healbot/internal/llm"
	"healbot/internal/logging"
	"healbot/internal/metrics"
	"healbot/pkg"
)

// SessionStore is the keyed persistence the chat flow needs: patient
// records and append-only transcripts addressed by an opaque user id.
// Absence is reported as (nil, nil), not as an error.
type SessionStore interface {
	GetPatientRecord(ctx context.Context, userID string) (*pkg.PatientRecord, error)
	PutPatientRecord(ctx context.Context, userID string, rec *pkg.PatientRecord) error
	GetTranscript(ctx context.Context, userID string) ([]pkg.Turn, error)
	AppendTurns(ctx context.Context, userID string, turns []pkg.Turn) error
}

// ChatService orchestrates one consultation exchange: load state, fold a
// newly reported symptom into the record, summarize, assemble the prompt,
// call the model, and append both turns to the transcript. Concurrent
// requests for one user are not coordinated; profile writes are
// last-writer-wins and transcript appends are ordered by the store.
type ChatService struct {
	store       SessionStore
	llm         llm.Client
	assembler   Assembler
	temperature float32
	maxTokens   int
}

// NewChatService constructs a ChatService with explicit collaborators.
func NewChatService(store SessionStore, client llm.Client, assembler Assembler, temperature float32, maxTokens int) *ChatService {
	return &ChatService{
		store:       store,
		llm:         client,
		assembler:   assembler,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Chat produces the assistant's reply to one patient message and returns
// the transcript length after the exchange. A record or transcript that
// cannot be loaded degrades to absent state; only a model failure or a
// failed transcript append fails the request.
func (s *ChatService) Chat(ctx context.Context, userID, message string) (string, int, error) {
	log := logging.WithUser(userID)

	transcript, err := s.store.GetTranscript(ctx, userID)
	if err != nil {
		log.Warn("transcript unavailable, starting empty", "error", err)
		transcript = nil
	}

	rec, err := s.store.GetPatientRecord(ctx, userID)
	if err != nil {
		log.Warn("patient record unavailable, continuing without", "error", err)
		rec = nil
	}

	// Persist a detected symptom before summarizing so the just-typed
	// complaint shows up in this turn's context.
	if DetectSymptom(message) {
		if rec == nil {
			rec = &pkg.PatientRecord{}
		}
		rec.Profile.NewSymptoms = append(rec.Profile.NewSymptoms, message)
		rec.LastUpdated = time.Now().UTC()
		if err := s.store.PutPatientRecord(ctx, userID, rec); err != nil {
			log.Warn("failed to persist reported symptom", "error", err)
		} else {
			metrics.RecordSymptomUpdate()
		}
	}

	summary := Summarize(rec)
	msgs := s.assembler.Assemble(rec, summary, transcript, message)

	start := time.Now()
	reply, err := s.llm.Complete(ctx, msgs, s.temperature, s.maxTokens)
	metrics.RecordLLMRequest(time.Since(start), err)
	if err != nil {
		return "", 0, fmt.Errorf("generate reply: %w", err)
	}

	now := time.Now().UTC()
	turns := []pkg.Turn{
		{Role: pkg.RolePatient, Content: message, CreatedAt: now},
		{Role: pkg.RoleAssistant, Content: reply, CreatedAt: now},
	}
	if err := s.store.AppendTurns(ctx, userID, turns); err != nil {
		return "", 0, fmt.Errorf("append turns: %w", err)
	}

	metrics.RecordChatExchange()
	return reply, len(transcript) + len(turns), nil
}
