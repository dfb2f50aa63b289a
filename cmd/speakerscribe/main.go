package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"speakerscribe/internal/config"
	"speakerscribe/internal/logger"
	"speakerscribe/internal/pipeline"
)

const version = "1.0"

// main is the application entry point
func main() {
	var (
		helpFlag    = flag.Bool("help", false, "Show help message")
		versionFlag = flag.Bool("version", false, "Show version information")
		configFlag  = flag.String("config", "", "Path to config file (overrides CONFIG_PATH)")
		inputFlag   = flag.String("input", "", "Path to local audio file")
		urlFlag     = flag.String("url", "", "URL of audio file to download")
		base64Flag  = flag.String("base64", "", "Base64-encoded audio payload")
		outputFlag  = flag.String("output", "", "Path for the JSON result (default: stdout)")
		debugFlag   = flag.Bool("debug", false, "Use development logging")
	)
	flag.Parse()

	if *helpFlag {
		printHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("speakerscribe v%s\n", version)
		os.Exit(0)
	}

	if err := runPipeline(*configFlag, *inputFlag, *urlFlag, *base64Flag, *outputFlag, *debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "speakerscribe error: %v\n", err)
		os.Exit(1)
	}
}

// runPipeline contains the core application logic that can be tested
func runPipeline(configPath, inputPath, url, base64Payload, outputPath string, debug bool) error {
	zapLogger := logger.NewLogger()
	if debug {
		devLogger, err := logger.NewDevelopmentLogger()
		if err != nil {
			return fmt.Errorf("failed to create development logger: %w", err)
		}
		zapLogger = devLogger
	}
	defer zapLogger.Sync()

	zapLogger.Info("speakerscribe starting up",
		zap.String("component", "main"),
		zap.String("version", version))

	cfg, err := loadConfiguration(configPath)
	if err != nil {
		return err
	}

	input, err := resolveInput(inputPath, url, base64Payload)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, zapLogger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	p.SetObserver(&logObserver{logger: zapLogger})

	// Cancel the run on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(ctx, input)
	if err != nil {
		return err
	}

	return writeResult(result, outputPath)
}

// loadConfiguration picks the config source: explicit flag, CONFIG_PATH, or
// environment variables.
func loadConfiguration(configPath string) (*config.Configuration, error) {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	if configPath != "" {
		cfg, err := config.NewConfigurationFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.NewConfigurationFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	return cfg, nil
}

// resolveInput builds the pipeline input from the source flags
func resolveInput(inputPath, url, base64Payload string) (pipeline.Input, error) {
	input := pipeline.Input{
		Path:   inputPath,
		URL:    url,
		Base64: base64Payload,
	}
	if err := input.Validate(); err != nil {
		return pipeline.Input{}, fmt.Errorf("invalid input: %w (use exactly one of -input, -url, -base64)", err)
	}
	return input, nil
}

// writeResult marshals the pipeline result as indented JSON to the output
// path, or stdout when none is given.
func writeResult(result *pipeline.Result, outputPath string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}

// logObserver reports pipeline progress milestones through the logger.
type logObserver struct {
	logger *zap.Logger
}

func (o *logObserver) Progress(status string, percent int) {
	o.logger.Info("pipeline progress",
		zap.String("status", status),
		zap.Int("percent", percent))
}

// printHelp displays usage information
func printHelp() {
	fmt.Println("speakerscribe - diarization-aware transcript fusion")
	fmt.Println()
	fmt.Println("Transcribes audio with word-level timestamps, segments it into")
	fmt.Println("speaker turns, and fuses both streams into speaker-attributed")
	fmt.Println("transcript groups.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  speakerscribe [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -input string    Path to local audio file")
	fmt.Println("  -url string      URL of audio file to download")
	fmt.Println("  -base64 string   Base64-encoded audio payload")
	fmt.Println("  -output string   Path for the JSON result (default: stdout)")
	fmt.Println("  -config string   Path to config file (overrides CONFIG_PATH)")
	fmt.Println("  -debug           Use development logging")
	fmt.Println("  -version         Show version information")
	fmt.Println("  -help            Show this help message")
	fmt.Println()
	fmt.Println("Exactly one of -input, -url or -base64 must be given.")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  CONFIG_PATH            Config file path")
	fmt.Println("  SCRIBE_ASR_COMMAND     Speech-to-text engine command line")
	fmt.Println("  SCRIBE_DIARIZE_COMMAND Diarization engine command line")
	fmt.Println("  SCRIBE_OUTPUT_FORMAT   segments_only | words_only | both")
	fmt.Println("  SCRIBE_GROUP_SEGMENTS  Coalesce same-speaker segments (default true)")
}
