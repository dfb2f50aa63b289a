package audio

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Converter acquires source audio and converts it to the 16kHz mono PCM WAV
// format required by the downstream engines, using an external FFmpeg process.
// All intermediate files live in the temp directory and are removed by the
// cleanup function returned alongside the converted path, whether or not the
// run succeeds.
type Converter struct {
	ffmpegPath string
	logger     *zap.Logger
	httpClient *http.Client
}

// NewConverter creates a new Converter using the default FFmpeg binary path
func NewConverter(logger *zap.Logger) *Converter {
	return NewConverterWithPath("ffmpeg", logger)
}

// NewConverterWithPath creates a new Converter using the given FFmpeg binary path
func NewConverterWithPath(ffmpegPath string, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		ffmpegPath: ffmpegPath,
		logger:     logger,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// FromFile converts a local audio file to a temporary 16kHz mono WAV file.
// The returned cleanup function removes the temporary file.
func (c *Converter) FromFile(ctx context.Context, path string) (string, func(), error) {
	if _, err := os.Stat(path); err != nil {
		return "", nil, fmt.Errorf("audio file not accessible: %w", err)
	}
	return c.convert(ctx, path)
}

// FromURL downloads audio from the given URL and converts it to a temporary
// 16kHz mono WAV file. The downloaded payload is removed once conversion
// finishes; the returned cleanup function removes the converted file.
func (c *Converter) FromURL(ctx context.Context, url string) (string, func(), error) {
	c.logger.Info("downloading audio", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("failed to download audio: unexpected status %s", resp.Status)
	}

	return c.convertFromReader(ctx, resp.Body)
}

// FromBase64 decodes a base64 audio payload (with or without a data-URI
// prefix) and converts it to a temporary 16kHz mono WAV file.
func (c *Converter) FromBase64(ctx context.Context, data string) (string, func(), error) {
	decoded, err := base64.StdEncoding.DecodeString(StripDataURIPrefix(data))
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 audio: %w", err)
	}
	return c.convertFromReader(ctx, bytes.NewReader(decoded))
}

// StripDataURIPrefix removes a "data:<mime>;base64," prefix when present,
// leaving the bare base64 payload.
func StripDataURIPrefix(data string) string {
	if idx := strings.IndexByte(data, ','); idx >= 0 {
		return data[idx+1:]
	}
	return data
}

// convertFromReader stages the reader's content in a temporary file, converts
// it, then removes the staged copy.
func (c *Converter) convertFromReader(ctx context.Context, r io.Reader) (string, func(), error) {
	staged, err := os.CreateTemp("", "speakerscribe-*.audio")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp audio file: %w", err)
	}

	_, copyErr := io.Copy(staged, r)
	closeErr := staged.Close()
	if copyErr != nil {
		os.Remove(staged.Name())
		return "", nil, fmt.Errorf("failed to stage audio payload: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(staged.Name())
		return "", nil, fmt.Errorf("failed to stage audio payload: %w", closeErr)
	}

	wavPath, cleanup, err := c.convert(ctx, staged.Name())
	os.Remove(staged.Name())
	return wavPath, cleanup, err
}

// convert runs FFmpeg to produce a 16kHz mono s16le WAV file from the input
func (c *Converter) convert(ctx context.Context, inputPath string) (string, func(), error) {
	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("speakerscribe-%d.wav", time.Now().UnixNano()))

	args := buildFFmpegArgs(inputPath, outPath)

	c.logger.Info("converting audio with ffmpeg",
		zap.String("input", inputPath),
		zap.String("output", outPath))

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(outPath)
		c.logger.Warn("ffmpeg conversion failed",
			zap.Error(err),
			zap.String("stderr", stderr.String()))
		return "", nil, fmt.Errorf("ffmpeg conversion failed: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to remove temp wav file",
				zap.String("path", outPath),
				zap.Error(err))
		}
	}

	c.logger.Debug("audio conversion completed", zap.String("output", outPath))
	return outPath, cleanup, nil
}

// buildFFmpegArgs assembles the conversion arguments: 16kHz mono 16-bit PCM,
// the fixed sample format both engines expect.
func buildFFmpegArgs(inputPath, outPath string) []string {
	return []string{
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		outPath,
	}
}
