package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

// ExecTranscriber runs an external speech-to-text engine as a child process.
// The configured command is invoked with the WAV path and the run options as
// flags, and the engine's JSON response is decoded from stdout.
type ExecTranscriber struct {
	cmd    []string
	logger *zap.Logger
}

// NewExecTranscriber creates an ExecTranscriber from a configured command line
func NewExecTranscriber(command string, logger *zap.Logger) (*ExecTranscriber, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse asr command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("asr command is empty")
	}

	return &ExecTranscriber{cmd: args, logger: logger}, nil
}

// Transcribe runs the external engine and returns its ordered segments and
// the detected language.
func (t *ExecTranscriber) Transcribe(ctx context.Context, wavPath string, opts Options) (*Result, error) {
	args := append([]string{}, t.cmd[1:]...)
	args = append(args, buildEngineArgs(wavPath, opts)...)

	t.logger.Info("running transcription engine",
		zap.String("command", t.cmd[0]),
		zap.String("audio", wavPath),
		zap.String("language_hint", opts.Language),
		zap.Bool("translate", opts.Translate))

	command := exec.CommandContext(ctx, t.cmd[0], args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return nil, fmt.Errorf("asr command failed: %w: %s", err, stderr.String())
	}

	result, err := decodeResult(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	t.logger.Info("transcription completed",
		zap.Int("segments", len(result.Segments)),
		zap.String("language", result.Language))

	return result, nil
}

// buildEngineArgs maps run options to engine flags. Word timestamps are
// always requested.
func buildEngineArgs(wavPath string, opts Options) []string {
	args := []string{"--audio", wavPath, "--word-timestamps"}

	task := "transcribe"
	if opts.Translate {
		task = "translate"
	}
	args = append(args, "--task", task)

	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	if opts.Prompt != "" {
		args = append(args, "--prompt", opts.Prompt)
	}
	if opts.VADMinSilenceMS > 0 {
		args = append(args, "--vad-filter", "--vad-min-silence-ms", strconv.Itoa(opts.VADMinSilenceMS))
	}

	return args
}

// decodeResult parses the engine response and validates its segments.
func decodeResult(data []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode asr response: %w", err)
	}

	for i := range result.Segments {
		if err := result.Segments[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid segment %d: %w", i, err)
		}
	}

	return &result, nil
}
