package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration provides type-safe access to application settings
type Configuration struct {
	viper *viper.Viper
}

// setDefaults registers the default value for every supported key
func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.group_segments", true)
	v.SetDefault("pipeline.output_format", "both")
	v.SetDefault("pipeline.offset_seconds", 0)
	v.SetDefault("pipeline.num_speakers", 0)
	v.SetDefault("asr.command", "faster-whisper-json")
	v.SetDefault("asr.language", "")
	v.SetDefault("asr.prompt", "")
	v.SetDefault("asr.translate", false)
	v.SetDefault("asr.vad_min_silence_ms", 1000)
	v.SetDefault("diarize.command", "pyannote-diarize-json")
	v.SetDefault("ffmpeg.path", "ffmpeg")
}

// NewConfiguration creates a new Configuration instance with default settings
func NewConfiguration() *Configuration {
	v := viper.New()
	setDefaults(v)
	return &Configuration{viper: v}
}

// NewConfigurationFromFile creates a Configuration instance from a config file
func NewConfigurationFromFile(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	return &Configuration{viper: v}, nil
}

// NewConfigurationFromEnv creates a Configuration instance that reads from environment variables
func NewConfigurationFromEnv() (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	// Set up environment variable mapping
	v.SetEnvPrefix("SCRIBE")
	v.AutomaticEnv()

	// Map specific environment variables
	v.BindEnv("pipeline.group_segments", "SCRIBE_GROUP_SEGMENTS")
	v.BindEnv("pipeline.output_format", "SCRIBE_OUTPUT_FORMAT")
	v.BindEnv("pipeline.offset_seconds", "SCRIBE_OFFSET_SECONDS")
	v.BindEnv("pipeline.num_speakers", "SCRIBE_NUM_SPEAKERS")
	v.BindEnv("asr.command", "SCRIBE_ASR_COMMAND")
	v.BindEnv("asr.language", "SCRIBE_ASR_LANGUAGE")
	v.BindEnv("asr.prompt", "SCRIBE_ASR_PROMPT")
	v.BindEnv("asr.translate", "SCRIBE_ASR_TRANSLATE")
	v.BindEnv("asr.vad_min_silence_ms", "SCRIBE_ASR_VAD_MIN_SILENCE_MS")
	v.BindEnv("diarize.command", "SCRIBE_DIARIZE_COMMAND")
	v.BindEnv("ffmpeg.path", "SCRIBE_FFMPEG_PATH")

	return &Configuration{viper: v}, nil
}

// GetGroupSegments returns whether consecutive same-speaker segments are coalesced
func (c *Configuration) GetGroupSegments() bool {
	return c.viper.GetBool("pipeline.group_segments")
}

// GetOutputFormat returns the configured transcript output format name
func (c *Configuration) GetOutputFormat() string {
	return c.viper.GetString("pipeline.output_format")
}

// GetOffsetSeconds returns the offset added to every output timestamp
func (c *Configuration) GetOffsetSeconds() int {
	return c.viper.GetInt("pipeline.offset_seconds")
}

// GetNumSpeakers returns the expected-speaker-count hint (0 = auto)
func (c *Configuration) GetNumSpeakers() int {
	return c.viper.GetInt("pipeline.num_speakers")
}

// GetASRCommand returns the configured speech-to-text engine command line
func (c *Configuration) GetASRCommand() string {
	return c.viper.GetString("asr.command")
}

// GetASRLanguage returns the optional language hint for transcription
func (c *Configuration) GetASRLanguage() string {
	return c.viper.GetString("asr.language")
}

// GetASRPrompt returns the optional transcription prompt / hotword string
func (c *Configuration) GetASRPrompt() string {
	return c.viper.GetString("asr.prompt")
}

// GetASRTranslate returns whether the engine runs the translate task
func (c *Configuration) GetASRTranslate() bool {
	return c.viper.GetBool("asr.translate")
}

// GetVADMinSilenceMS returns the VAD minimum silence duration in milliseconds
func (c *Configuration) GetVADMinSilenceMS() int {
	return c.viper.GetInt("asr.vad_min_silence_ms")
}

// GetDiarizeCommand returns the configured diarization engine command line
func (c *Configuration) GetDiarizeCommand() string {
	return c.viper.GetString("diarize.command")
}

// GetFFmpegPath returns the configured FFmpeg binary path
func (c *Configuration) GetFFmpegPath() string {
	return c.viper.GetString("ffmpeg.path")
}
