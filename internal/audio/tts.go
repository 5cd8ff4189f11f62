package audio

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// ErrTTSDisabled is returned by Speak when text-to-speech is turned off
var ErrTTSDisabled = errors.New("text-to-speech is disabled")

const (
	ttsRequestTimeout = 10 * time.Second
	googleTTSURL      = "https://translate.google.com/translate_tts"
	maxFilenameStem   = 40
)

// TTSService turns words and meanings into MP3 files, cached in audioDir
type TTSService struct {
	audioDir string
	enabled  bool
	baseURL  string
	client   *http.Client
}

// NewTTSService creates a new TTS service
func NewTTSService(audioDir string, enabled bool) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		enabled:  enabled,
		baseURL:  googleTTSURL,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// Enabled reports whether Speak can produce audio
func (s *TTSService) Enabled() bool {
	return s.enabled
}

// Path returns the full path of a file returned by Speak
func (s *TTSService) Path(filename string) string {
	return filepath.Join(s.audioDir, filepath.Base(filename))
}

// Speak converts text to speech and returns the filename (not full path).
// An existing file for the same text is reused.
func (s *TTSService) Speak(ctx context.Context, text string) (string, error) {
	if !s.enabled {
		return "", ErrTTSDisabled
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("nothing to speak")
	}

	filename := SpeechFilename(text)
	path := s.Path(filename)
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	if err := s.fetch(ctx, text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	return filename, nil
}

// SpeechFilename derives a stable, filesystem-safe name for text
func SpeechFilename(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if b.Len() >= maxFilenameStem {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	h := fnv.New32a()
	h.Write([]byte(text))
	return fmt.Sprintf("speech_%s_%08x.mp3", b.String(), h.Sum32())
}

// fetch downloads speech for text from Google Translate's TTS endpoint into outputPath
func (s *TTSService) fetch(ctx context.Context, text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Google rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Write to a temp file first so a failed download never leaves a cached partial file
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), "speech-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return os.Rename(tmp.Name(), outputPath)
}
