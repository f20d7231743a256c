// Package download wraps yt-dlp for video metadata lookup and audio
// extraction.
package download

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tubescribe/pkg/executor"
	"tubescribe/pkg/models"
)

// Downloader is the collaborator the pipeline uses to locate and fetch
// remote media.
type Downloader interface {
	// FetchMetadata returns basic video information for the URL.
	FetchMetadata(ctx context.Context, url string) (*models.VideoMetadata, error)
	// ExtractAudio downloads the URL's audio track in the given format and
	// returns the local file path.
	ExtractAudio(ctx context.Context, url, format string) (string, error)
}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true, ".ogg": true, ".flac": true,
}

// YTDLP implements Downloader by shelling out to yt-dlp.
type YTDLP struct {
	bin  string
	dir  string
	exec executor.Executor
}

// NewYTDLP creates a Downloader writing audio files into dir.
func NewYTDLP(bin, dir string, exec executor.Executor) *YTDLP {
	return &YTDLP{bin: bin, dir: dir, exec: exec}
}

func (d *YTDLP) FetchMetadata(ctx context.Context, url string) (*models.VideoMetadata, error) {
	out, err := d.exec.Execute(ctx, d.bin, "--dump-json", "--no-playlist", "--quiet", url)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}

	var info struct {
		Title     string  `json:"title"`
		Duration  float64 `json:"duration"`
		Uploader  string  `json:"uploader"`
		ViewCount int64   `json:"view_count"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &info); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}

	return &models.VideoMetadata{
		Title:     info.Title,
		Duration:  info.Duration,
		Uploader:  info.Uploader,
		ViewCount: info.ViewCount,
	}, nil
}

func (d *YTDLP) ExtractAudio(ctx context.Context, url, format string) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", format,
		"--audio-quality", "192K",
		"--no-playlist",
		"-o", filepath.Join(d.dir, "%(title)s.%(ext)s"),
		"--print", "after_move:filepath",
		"--no-simulate",
		url,
	}

	out, err := d.exec.Execute(ctx, d.bin, args...)
	if err != nil {
		// yt-dlp sometimes exits non-zero after the file already landed, so
		// fall back to scanning the download directory before giving up.
		if path := d.newestAudioFile(format); path != "" {
			slog.Warn("yt-dlp exited with error but audio file found", "path", path, "error", err)
			return path, nil
		}
		return "", fmt.Errorf("extract audio: %w", err)
	}

	if path := lastNonEmptyLine(out); path != "" {
		if fi, statErr := os.Stat(path); statErr == nil && fi.Size() > 0 {
			return path, nil
		}
	}

	if path := d.newestAudioFile(format); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("extract audio: no output file produced")
}

// newestAudioFile scans the download directory for the most recently modified
// audio file, preferring the requested format.
func (d *YTDLP) newestAudioFile(preferredFormat string) string {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return ""
	}

	var newest string
	var newestMod int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !audioExtensions[ext] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime().UnixNano()
		// break ties in favor of the requested format
		if mod > newestMod || (mod == newestMod && ext == "."+preferredFormat) {
			newest = filepath.Join(d.dir, e.Name())
			newestMod = mod
		}
	}
	return newest
}

func lastNonEmptyLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

var _ Downloader = (*YTDLP)(nil)
