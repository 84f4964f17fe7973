package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/logging"
)

// WriteSession stores token at path with owner-only permissions.
func WriteSession(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("installing session: %w", err)
	}
	return nil
}

// ClearSession removes the session file. A missing file is not an error.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// FileProvider derives the session from a token file. A missing, invalid
// or expired token reads as signed out.
type FileProvider struct {
	path     string
	verifier *Verifier
	recheck  time.Duration
	logger   *zap.Logger
}

func NewFileProvider(path, secret string, logger *zap.Logger) (*FileProvider, error) {
	v, err := NewVerifier(secret, logger)
	if err != nil {
		return nil, err
	}
	return &FileProvider{
		path:     filepath.Clean(path),
		verifier: v,
		recheck:  time.Minute,
		logger:   logging.OrNop(logger).Named("SessionFile"),
	}, nil
}

// Current returns the user id of a valid session, or "".
func (p *FileProvider) Current() string {
	claims, err := p.Claims()
	if err != nil {
		return ""
	}
	return claims.UserID
}

// Claims returns the verified claims of the stored session.
func (p *FileProvider) Claims() (*Claims, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("reading session file", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: no session", ErrInvalidToken)
	}
	return p.verifier.Verify(strings.TrimSpace(string(raw)))
}

// Watch emits the current session and then every change to it. Changes are
// picked up from file events and from a periodic recheck that notices
// expiry.
func (p *FileProvider) Watch(ctx context.Context) (<-chan string, error) {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating session watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	out := make(chan string)
	go p.run(ctx, watcher, out)
	return out, nil
}

func (p *FileProvider) run(ctx context.Context, watcher *fsnotify.Watcher, out chan<- string) {
	defer close(out)
	defer watcher.Close()

	ticker := time.NewTicker(p.recheck)
	defer ticker.Stop()

	last := p.Current()
	select {
	case out <- last:
	case <-ctx.Done():
		return
	}

	emitIfChanged := func() bool {
		now := p.Current()
		if now == last {
			return true
		}
		last = now
		select {
		case out <- now:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != p.path {
				continue
			}
			if !emitIfChanged() {
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("session watcher error", zap.Error(err))
		case <-ticker.C:
			if !emitIfChanged() {
				return
			}
		}
	}
}
