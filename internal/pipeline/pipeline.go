package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"speakerscribe/internal/asr"
	"speakerscribe/internal/audio"
	"speakerscribe/internal/config"
	"speakerscribe/internal/diarize"
	"speakerscribe/internal/merge"
	"speakerscribe/internal/timing"
)

// Input identifies the source audio for one run. Exactly one field must be
// set. WAVPath names audio that is already decoded to 16kHz mono PCM WAV and
// skips acquisition; the other three go through FFmpeg conversion first.
type Input struct {
	WAVPath string
	Path    string
	URL     string
	Base64  string
}

// Validate checks that exactly one source field is set
func (in Input) Validate() error {
	set := 0
	for _, v := range []string{in.WAVPath, in.Path, in.URL, in.Base64} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one input source must be set, got %d", set)
	}
	return nil
}

// Result is the pipeline's external contract: speaker-attributed transcript
// groups plus the detected language and the number of distinct speakers.
type Result struct {
	Segments    []merge.Group `json:"segments"`
	Language    string        `json:"language"`
	NumSpeakers int           `json:"num_speakers"`
}

// Pipeline fuses the outputs of the speech-to-text and diarization engines
// into speaker-attributed transcript groups. Each Run operates on freshly
// constructed entities; a Pipeline holds no state that crosses runs.
type Pipeline struct {
	cfg         *config.Configuration
	logger      *zap.Logger
	converter   *audio.Converter
	transcriber asr.Transcriber
	diarizer    diarize.Diarizer
	observer    Observer
	format      merge.Format
}

// NewPipeline creates a Pipeline whose engines are the exec adapters built
// from the configured command lines.
func NewPipeline(cfg *config.Configuration, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	transcriber, err := asr.NewExecTranscriber(cfg.GetASRCommand(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}

	diarizer, err := diarize.NewExecDiarizer(cfg.GetDiarizeCommand(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create diarizer: %w", err)
	}

	return NewPipelineWithEngines(cfg, logger, transcriber, diarizer)
}

// NewPipelineWithEngines creates a Pipeline with the given engine
// implementations.
func NewPipelineWithEngines(cfg *config.Configuration, logger *zap.Logger, transcriber asr.Transcriber, diarizer diarize.Diarizer) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	format, err := merge.ParseFormat(cfg.GetOutputFormat())
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:         cfg,
		logger:      logger,
		converter:   audio.NewConverterWithPath(cfg.GetFFmpegPath(), logger),
		transcriber: transcriber,
		diarizer:    diarizer,
		observer:    nopObserver{},
		format:      format,
	}, nil
}

// SetObserver attaches a progress observer. A nil observer restores the
// default no-op.
func (p *Pipeline) SetObserver(o Observer) {
	if o == nil {
		p.observer = nopObserver{}
		return
	}
	p.observer = o
}

// Run executes one full inference: acquire audio, transcribe, diarize, then
// align, rebuild and group. The engine calls run strictly in sequence; the
// merge needs both output streams fully materialized. A run where no word
// survives alignment is not an error: it returns an empty group slice with
// the language and speaker count still populated.
func (p *Pipeline) Run(ctx context.Context, input Input) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	clock := timing.NewStageClock(p.logger)

	p.observer.Progress("acquiring audio", 25)
	clock.Start("acquire")
	wavPath, cleanup, err := p.acquire(ctx, input)
	clock.Stop("acquire")
	if err != nil {
		return nil, p.fail(StageAcquire, err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	p.observer.Progress("transcribing", 40)
	clock.Start("transcribe")
	asrResult, err := p.transcriber.Transcribe(ctx, wavPath, asr.Options{
		Language:        p.cfg.GetASRLanguage(),
		Prompt:          p.cfg.GetASRPrompt(),
		Translate:       p.cfg.GetASRTranslate(),
		VADMinSilenceMS: p.cfg.GetVADMinSilenceMS(),
	})
	clock.Stop("transcribe")
	if err != nil {
		return nil, p.fail(StageTranscribe, err)
	}

	p.observer.Progress("diarizing", 60)
	clock.Start("diarize")
	waveform, err := audio.ReadWAV(wavPath)
	if err != nil {
		clock.Stop("diarize")
		return nil, p.fail(StageDiarize, err)
	}
	turns, err := p.diarizer.Diarize(ctx, waveform, p.cfg.GetNumSpeakers())
	clock.Stop("diarize")
	if err != nil {
		return nil, p.fail(StageDiarize, err)
	}

	numSpeakers := diarize.CountSpeakers(turns)

	p.observer.Progress("merging", 80)
	clock.Start("merge")
	labeled := merge.RebuildSegments(asrResult.Segments, turns)
	groups := merge.GroupSegments(labeled, p.cfg.GetGroupSegments(), p.format)
	if offset := p.cfg.GetOffsetSeconds(); offset != 0 {
		applyOffset(groups, float64(offset))
	}
	clock.Stop("merge")

	p.logger.Info("merge completed",
		zap.Int("input_segments", len(asrResult.Segments)),
		zap.Int("labeled_segments", len(labeled)),
		zap.Int("groups", len(groups)),
		zap.Int("speakers", numSpeakers),
		zap.String("language", asrResult.Language))

	clock.LogSummary()
	p.observer.Progress("complete", 100)

	return &Result{
		Segments:    groups,
		Language:    asrResult.Language,
		NumSpeakers: numSpeakers,
	}, nil
}

// acquire resolves the input to a 16kHz mono WAV path. A pre-converted
// WAVPath is used as-is and never cleaned up; the other sources go through
// the converter, which owns the temp files.
func (p *Pipeline) acquire(ctx context.Context, input Input) (string, func(), error) {
	switch {
	case input.WAVPath != "":
		return input.WAVPath, nil, nil
	case input.Path != "":
		p.observer.Progress("converting audio", 30)
		return p.converter.FromFile(ctx, input.Path)
	case input.URL != "":
		p.observer.Progress("downloading audio", 30)
		return p.converter.FromURL(ctx, input.URL)
	default:
		p.observer.Progress("decoding audio", 30)
		return p.converter.FromBase64(ctx, input.Base64)
	}
}

// fail reports the failure milestone and tags the error with its stage.
func (p *Pipeline) fail(stage Stage, err error) error {
	p.observer.Progress(fmt.Sprintf("%s failed", stage), -1)
	p.logger.Error("pipeline stage failed",
		zap.String("stage", string(stage)),
		zap.Error(err))
	return &StageError{Stage: stage, Err: err}
}

// applyOffset shifts every output timestamp by the configured offset so the
// result aligns with an external clock. The merge itself runs on engine-native
// timestamps; the offset is applied exactly once, here.
func applyOffset(groups []merge.Group, offset float64) {
	for i := range groups {
		groups[i].Start += offset
		groups[i].End += offset
		for j := range groups[i].Words {
			groups[i].Words[j].Start += offset
			groups[i].Words[j].End += offset
		}
	}
}
