// Package transcribe dispatches audio to one or more speech-to-text backends
// and reconciles their independent outcomes.
package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"tubescribe/pkg/models"
)

// Options carries per-request backend hints.
type Options struct {
	// Model is a backend-specific size hint (tiny, base, small, medium, large).
	Model string
}

// Backend is one interchangeable speech-to-text implementation. A returned
// error means the backend could not produce text; the coordinator converts it
// into a failed BackendResult rather than propagating it.
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, audioPath string, opts Options) (*models.BackendResult, error)
}

// Coordinator runs the requested backends over a shared audio file. Backends
// are held as a named-variant mapping so "both" is simply "every registered
// name" rather than a special case.
type Coordinator struct {
	backends map[string]Backend
	names    []string // registration order, for deterministic dispatch
}

// NewCoordinator creates a Coordinator over the given backends.
func NewCoordinator(backends ...Backend) *Coordinator {
	c := &Coordinator{backends: make(map[string]Backend, len(backends))}
	for _, b := range backends {
		if _, dup := c.backends[b.Name()]; dup {
			continue
		}
		c.backends[b.Name()] = b
		c.names = append(c.names, b.Name())
	}
	return c
}

// Transcribe produces a TranscriptionResult for the requested method. Faults
// are always carried inside the result: backend failures as per-backend
// success=false entries, dispatch-level problems (bad path, unknown method)
// as the result's Error.
func (c *Coordinator) Transcribe(ctx context.Context, audioPath, method string, opts Options) *models.TranscriptionResult {
	res := &models.TranscriptionResult{
		Method:   method,
		Backends: make(map[string]*models.BackendResult),
	}

	if msg := checkAudioFile(audioPath); msg != "" {
		res.Error = msg
		return res
	}

	requested, err := c.requestedBackends(method)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, name := range requested {
		backend := c.backends[name]
		wg.Add(1)
		go func(name string, backend Backend) {
			defer wg.Done()
			br := runIsolated(ctx, backend, audioPath, opts)
			mu.Lock()
			res.Backends[name] = br
			mu.Unlock()
		}(name, backend)
	}
	wg.Wait()

	if method == models.MethodBoth {
		// Dispatch completed; inner backends carry their own failures.
		res.Success = true
	} else {
		res.Success = res.Backends[method].Success
	}
	return res
}

// runIsolated invokes one backend and converts every failure mode (error
// return or panic) into a failed BackendResult, so one backend can never
// short-circuit another.
func runIsolated(ctx context.Context, backend Backend, audioPath string, opts Options) (br *models.BackendResult) {
	defer func() {
		if r := recover(); r != nil {
			br = &models.BackendResult{
				Method:  backend.Name(),
				Success: false,
				Error:   fmt.Sprintf("backend panic: %v", r),
			}
		}
	}()

	result, err := backend.Transcribe(ctx, audioPath, opts)
	if err != nil {
		return &models.BackendResult{
			Method:  backend.Name(),
			Success: false,
			Error:   err.Error(),
		}
	}
	result.Method = backend.Name()
	result.Success = true
	return result
}

func (c *Coordinator) requestedBackends(method string) ([]string, error) {
	if method == models.MethodBoth {
		return c.names, nil
	}
	if _, ok := c.backends[method]; !ok {
		known := append([]string(nil), c.names...)
		sort.Strings(known)
		return nil, fmt.Errorf("unsupported transcription method %q: must be one of %s, both",
			method, strings.Join(known, ", "))
	}
	return []string{method}, nil
}

// checkAudioFile validates the shared preconditions once, before any backend
// runs. When the file is missing, the diagnostic lists sibling audio files so
// the operator can see what actually landed in the directory.
func checkAudioFile(audioPath string) string {
	if audioPath == "" {
		return "no audio file path provided"
	}

	fi, err := os.Stat(audioPath)
	if err != nil {
		if os.IsNotExist(err) {
			return missingFileDiagnostic(audioPath)
		}
		return fmt.Sprintf("cannot access audio file %s: %v", audioPath, err)
	}
	if fi.Size() == 0 {
		return fmt.Sprintf("audio file is empty: %s", audioPath)
	}
	return ""
}

func missingFileDiagnostic(audioPath string) string {
	dir := filepath.Dir(audioPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Sprintf("audio file not found: %s (directory does not exist: %s)", audioPath, dir)
	}

	var siblings []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		switch ext {
		case ".mp3", ".wav", ".m4a", ".ogg", ".flac":
			siblings = append(siblings, e.Name())
		}
	}

	if len(siblings) == 0 {
		return fmt.Sprintf("audio file not found: %s (no audio files in %s)", audioPath, dir)
	}

	shown := siblings
	more := ""
	if len(siblings) > 5 {
		shown = siblings[:5]
		more = fmt.Sprintf(" (and %d more)", len(siblings)-5)
	}
	return fmt.Sprintf("audio file not found: %s; audio files in %s: %s%s",
		audioPath, dir, strings.Join(shown, ", "), more)
}
