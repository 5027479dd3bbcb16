package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnrecognized is returned when the service processed the audio but
// could not extract any speech from it. Callers treat it as a client
// error, not a service failure.
var ErrUnrecognized = errors.New("could not understand audio")

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}

// GroqTranscriptionURL is the Whisper endpoint on Groq's OpenAI-compatible
// API surface.
const GroqTranscriptionURL = "https://api.groq.com/openai/v1/audio/transcriptions"

// WhisperClient transcribes audio through a Whisper-compatible HTTP API.
type WhisperClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
}

// NewWhisperClient constructs a transcription client. An empty apiURL
// falls back to GroqTranscriptionURL.
func NewWhisperClient(apiKey, model, apiURL string) *WhisperClient {
	if apiURL == "" {
		apiURL = GroqTranscriptionURL
	}
	return &WhisperClient{
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // Whisper can take a while for long audio
		},
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
	}
}

// Transcribe uploads the audio file and returns the recognized text.
// Audio the service cannot make sense of yields ErrUnrecognized; anything
// else that goes wrong is a service error.
func (c *WhisperClient) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	audioFile, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer audioFile.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return "", fmt.Errorf("copy audio data: %w", err)
	}
	if err := writer.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if language != "" && language != "auto" {
		if err := writer.WriteField("language", language); err != nil {
			return "", fmt.Errorf("write language field: %w", err)
		}
	}
	if err := writer.WriteField("response_format", "json"); err != nil {
		return "", fmt.Errorf("write response_format field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var errorResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Error.Message != "" {
			return "", fmt.Errorf("whisper API: %s", errorResp.Error.Message)
		}
		return "", fmt.Errorf("whisper API: status %d", resp.StatusCode)
	}

	var apiResp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	text := strings.TrimSpace(apiResp.Text)
	if text == "" {
		return "", ErrUnrecognized
	}
	return text, nil
}

// SupportedUploadFormat checks whether a MIME type is accepted for
// transcription uploads.
func SupportedUploadFormat(mimeType string) bool {
	supported := map[string]bool{
		"audio/mpeg":  true,
		"audio/mp3":   true,
		"audio/mp4":   true,
		"audio/x-m4a": true,
		"audio/wav":   true,
		"audio/x-wav": true,
		"audio/wave":  true,
		"audio/webm":  true,
		"audio/ogg":   true,
		"audio/flac":  true,
	}
	return supported[mimeType]
}
