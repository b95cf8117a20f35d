package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
	"github.com/custodia-labs/reportqa/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

const promptExt = ".txt"

// PromptStore loads prompt overrides from user-editable files on disk.
// A prompt named "answer" lives in <dir>/answer.txt. A missing or blank
// file is reported as domain.ErrNotFound so callers use the built-in
// template.
//
// The constructor performs no I/O. Reads are cached until Reload or until
// Watch sees the file change.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
}

// NewPromptStore creates a file-based prompt store.
// If promptDir is empty, defaults to <DefaultDir>/prompts.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the override for name.
func (s *PromptStore) Load(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: invalid prompt name %q", domain.ErrInvalidInput, name)
	}

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	prompt = strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt %q is empty: %w", name, domain.ErrNotFound)
	}

	s.mu.Lock()
	s.cache[name] = prompt
	s.mu.Unlock()
	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// forget drops one cached prompt.
func (s *PromptStore) forget(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.promptDir, name+promptExt)
}

// Init creates the prompt directory and its README. Existing files are
// left untouched.
func (s *PromptStore) Init() error {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}

	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(promptReadme), 0600)
}

// Watch reloads prompts when their files change until ctx is cancelled.
// onChange, if non-nil, is called with the prompt name after the cache
// entry is dropped.
func (s *PromptStore) Watch(ctx context.Context, onChange func(name string)) error {
	if err := s.Init(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.promptDir); err != nil {
		return fmt.Errorf("watch %s: %w", s.promptDir, err)
	}
	logger.Debug("prompts: watching %s", s.promptDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, changed := promptEvent(event)
			if !changed {
				continue
			}
			s.forget(name)
			logger.Info("prompts: %s changed (%s), reloaded", name, event.Op)
			if onChange != nil {
				onChange(name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("prompts: watcher error: %v", err)
		}
	}
}

// promptEvent maps a filesystem event to the prompt it affects. Chmod
// events and files that are not prompts are ignored.
func promptEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || filepath.Ext(base) != promptExt {
		return "", false
	}
	return strings.TrimSuffix(base, promptExt), true
}

const promptReadme = `# reportqa prompts

Files in this directory override built-in prompt templates.

## Files

- ` + "`answer.txt`" + ` - The grounded answer prompt.

## Placeholders

The answer prompt must contain both placeholders:

- ` + "`{{context}}`" + ` - the retrieved report excerpts
- ` + "`{{question}}`" + ` - the user's question

A template missing either placeholder is ignored and the built-in one is
used. Delete or empty a file to return to the default. Running servers
pick up changes without a restart.
`
