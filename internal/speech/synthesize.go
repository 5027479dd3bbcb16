package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode"
)

// Synthesizer converts text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}

// TranslateTTSURL is the free Google Translate speech endpoint.
const TranslateTTSURL = "https://translate.google.com/translate_tts"

// ttsChunkLimit is the longest text the endpoint accepts per request.
const ttsChunkLimit = 200

// TranslateTTS synthesizes speech through the Google Translate TTS
// endpoint. Text longer than the per-request limit is split at whitespace
// and the returned MP3 segments are concatenated, which players accept as
// one stream.
type TranslateTTS struct {
	httpClient *http.Client
	baseURL    string
}

// NewTranslateTTS constructs a synthesizer. An empty baseURL falls back
// to TranslateTTSURL.
func NewTranslateTTS(baseURL string) *TranslateTTS {
	if baseURL == "" {
		baseURL = TranslateTTSURL
	}
	return &TranslateTTS{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// Synthesize returns MP3 audio for the given text in the given language.
func (t *TranslateTTS) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}
	if languageCode == "" {
		languageCode = "en"
	}

	chunks := splitChunks(text, ttsChunkLimit)
	var audio []byte
	for i, chunk := range chunks {
		segment, err := t.fetchChunk(ctx, chunk, languageCode, i, len(chunks))
		if err != nil {
			return nil, err
		}
		audio = append(audio, segment...)
	}
	return audio, nil
}

func (t *TranslateTTS) fetchChunk(ctx context.Context, chunk, languageCode string, idx, total int) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("q", chunk)
	params.Set("tl", languageCode)
	params.Set("idx", strconv.Itoa(idx))
	params.Set("total", strconv.Itoa(total))
	params.Set("textlen", strconv.Itoa(len([]rune(chunk))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts service: status %d", resp.StatusCode)
	}
	segment, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return segment, nil
}

// splitChunks breaks text into pieces of at most limit runes, preferring
// whitespace boundaries. A single word longer than the limit is split
// mid-word.
func splitChunks(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + limit
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		cut := end
		for cut > start && !unicode.IsSpace(runes[cut]) {
			cut--
		}
		if cut == start {
			cut = end // no whitespace in range, hard split
		}
		chunks = append(chunks, string(runes[start:cut]))
		start = cut
		for start < len(runes) && unicode.IsSpace(runes[start]) {
			start++
		}
	}
	return chunks
}
