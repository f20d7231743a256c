// Package main is the tubescribe command line tool: transcribe one YouTube
// URL from the terminal without running the server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tubescribe/internal/config"
	"tubescribe/internal/download"
	"tubescribe/internal/transcribe"
	"tubescribe/internal/transcribe/google"
	"tubescribe/internal/transcribe/whisper"
	"tubescribe/pkg/executor"
	"tubescribe/pkg/models"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

type cliFlags struct {
	format    string
	method    string
	model     string
	output    string
	keepAudio bool
	infoOnly  bool
}

func newRootCommand() *cobra.Command {
	var flags cliFlags

	rootCmd := &cobra.Command{
		Use:           "tubescribe <url>",
		Short:         "Transcribe a YouTube video's audio to text",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], flags)
		},
	}

	rootCmd.Flags().StringVarP(&flags.format, "format", "f", "mp3", "audio format (mp3 or wav)")
	rootCmd.Flags().StringVarP(&flags.method, "method", "m", "whisper", "transcription method (whisper, google or both)")
	rootCmd.Flags().StringVar(&flags.model, "model", "base", "whisper model size (tiny, base, small, medium, large)")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "transcript output file path")
	rootCmd.Flags().BoolVar(&flags.keepAudio, "keep-audio", false, "keep the extracted audio file")
	rootCmd.Flags().BoolVar(&flags.infoOnly, "info-only", false, "print video info and exit")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd.SetContext(ctx)
	cobra.OnFinalize(stop)

	return rootCmd
}

func run(ctx context.Context, url string, flags cliFlags) error {
	if !isYouTubeURL(url) {
		return fmt.Errorf("not a YouTube URL: %s", url)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	exec := executor.New()
	downloader := download.NewYTDLP(cfg.Download.YTDLPPath, cfg.Download.Dir, exec)

	meta, err := downloader.FetchMetadata(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch video info: %w", err)
	}
	fmt.Printf("Title:    %s\n", meta.Title)
	fmt.Printf("Uploader: %s\n", meta.Uploader)
	fmt.Printf("Duration: %dm %ds\n", int(meta.Duration)/60, int(meta.Duration)%60)
	fmt.Printf("Views:    %d\n", meta.ViewCount)

	if flags.infoOnly {
		return nil
	}

	fmt.Printf("\nExtracting audio (%s)...\n", flags.format)
	audioPath, err := downloader.ExtractAudio(ctx, url, flags.format)
	if err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	if !flags.keepAudio {
		defer os.Remove(audioPath)
	}
	fmt.Printf("Audio extracted: %s\n", audioPath)

	fmt.Printf("\nTranscribing (%s)...\n", flags.method)
	coordinator := transcribe.NewCoordinator(
		whisper.New(cfg.Whisper, exec),
		google.New(cfg.Google),
	)
	res := coordinator.Transcribe(ctx, audioPath, flags.method, transcribe.Options{Model: flags.model})
	if !res.OK() {
		return fmt.Errorf("transcription failed: %s", res.FailureMessage())
	}

	transcript := formatTranscript(url, meta, res)
	fmt.Println()
	fmt.Println(transcript)

	outputPath := flags.output
	if outputPath == "" {
		outputPath = safeFileName(meta.Title) + "_transcript.txt"
	}
	if err := os.WriteFile(outputPath, []byte(transcript), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	fmt.Printf("\nTranscript saved: %s\n", outputPath)
	return nil
}

func formatTranscript(url string, meta *models.VideoMetadata, res *models.TranscriptionResult) string {
	header := fmt.Sprintf("Video: %s\nURL: %s\nMethod: %s\n\n", meta.Title, url, res.Method)

	if res.Method == models.MethodBoth {
		body := ""
		for _, name := range []string{models.MethodWhisper, models.MethodGoogle} {
			b := res.Backends[name]
			if b == nil {
				continue
			}
			if b.Success {
				body += fmt.Sprintf("[%s]\n%s\n\n", name, b.Text)
			} else {
				body += fmt.Sprintf("[%s]\nfailed: %s\n\n", name, b.Error)
			}
		}
		return header + body
	}

	if b := res.Backends[res.Method]; b != nil {
		return header + b.Text + "\n"
	}
	return header
}

// safeFileName keeps letters, digits, spaces, dashes and underscores.
func safeFileName(title string) string {
	if title == "" {
		return "transcript"
	}
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r == ' ' || r == '-' || r == '_':
			out = append(out, r)
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			out = append(out, r)
		case r > 127: // keep non-ASCII letters (Korean titles)
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "transcript"
	}
	return string(out)
}

func isYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}
