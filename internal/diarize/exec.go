package diarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"

	"speakerscribe/internal/audio"
)

// ExecDiarizer runs an external diarization engine as a child process. The
// waveform is written to a temporary WAV file, the configured command is
// invoked with the file path and an optional speaker-count hint, and the
// engine's JSON response is decoded from stdout.
type ExecDiarizer struct {
	cmd    []string
	logger *zap.Logger
}

type execResponse struct {
	Turns []Turn `json:"turns"`
}

// NewExecDiarizer creates an ExecDiarizer from a configured command line
func NewExecDiarizer(command string, logger *zap.Logger) (*ExecDiarizer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diarization command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("diarization command is empty")
	}

	return &ExecDiarizer{cmd: args, logger: logger}, nil
}

// Diarize runs the external engine and returns its speaker turns ordered
// non-decreasing by start.
func (d *ExecDiarizer) Diarize(ctx context.Context, waveform audio.Waveform, numSpeakers int) ([]Turn, error) {
	file, err := os.CreateTemp("", "speakerscribe-diarize-*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp wav file: %w", err)
	}
	defer os.Remove(file.Name())

	writeErr := audio.WriteWAV(file, waveform)
	closeErr := file.Close()
	if writeErr != nil {
		return nil, fmt.Errorf("failed to write waveform: %w", writeErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to write waveform: %w", closeErr)
	}

	args := append([]string{}, d.cmd[1:]...)
	args = append(args, "--audio", file.Name())
	if numSpeakers > 0 {
		args = append(args, "--num-speakers", strconv.Itoa(numSpeakers))
	}

	d.logger.Info("running diarization engine",
		zap.String("command", d.cmd[0]),
		zap.Int("num_speakers_hint", numSpeakers),
		zap.Float64("audio_seconds", waveform.Duration()))

	command := exec.CommandContext(ctx, d.cmd[0], args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return nil, fmt.Errorf("diarization command failed: %w: %s", err, stderr.String())
	}

	turns, err := decodeTurns(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	d.logger.Info("diarization completed",
		zap.Int("turns", len(turns)),
		zap.Int("speakers", CountSpeakers(turns)))

	return turns, nil
}

// decodeTurns parses the engine response and normalizes turn ordering.
func decodeTurns(data []byte) ([]Turn, error) {
	var resp execResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode diarization response: %w", err)
	}

	for i := range resp.Turns {
		if err := resp.Turns[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid turn %d: %w", i, err)
		}
	}

	// Engines emit turns in chronological order; a stable sort preserves the
	// original relative order of equal starts while enforcing the invariant
	// the merge depends on.
	sort.SliceStable(resp.Turns, func(i, j int) bool {
		return resp.Turns[i].Start < resp.Turns[j].Start
	})

	return resp.Turns, nil
}
