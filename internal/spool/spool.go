package spool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"release-tagger/internal/model"
)

func (s *implSpool) List(ctx context.Context) ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read spool dir: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := de.Name()
		ext := filepath.Ext(name)
		if de.IsDir() || strings.HasPrefix(name, ".") || (ext != ExtMail && ext != ExtJSON) {
			continue
		}

		entry := Entry{Name: name}
		entry.Notification, entry.Err = s.read(name)
		if entry.Err != nil {
			s.l.Warnf(ctx, "spool: %s unusable: %v", name, entry.Err)
		}
		entries = append(entries, entry)
	}

	s.l.Debugf(ctx, "spool: %d pending entries in %s", len(entries), s.cfg.Dir)
	return entries, nil
}

func (s *implSpool) read(name string) (model.Notification, error) {
	n, err := ReadFile(filepath.Join(s.cfg.Dir, name), s.cfg.Sender)
	n.ID = name
	return n, err
}

// ReadFile decodes one .eml or .json notification file. Mails not sent by
// sender fail with ErrForeignSender; an empty sender accepts any mail.
func ReadFile(path, sender string) (model.Notification, error) {
	n := model.Notification{ID: filepath.Base(path)}

	f, err := os.Open(path)
	if err != nil {
		return n, fmt.Errorf("failed to open %s: %w", n.ID, err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ExtMail:
		info, err := f.Stat()
		if err != nil {
			return n, fmt.Errorf("failed to stat %s: %w", n.ID, err)
		}
		n.Source = model.SourceMail
		n.ReceivedAt = info.ModTime()
		n.Fields, err = ParseMail(f, sender)
		return n, err
	case ExtJSON:
		var je jsonEntry
		if err := json.NewDecoder(f).Decode(&je); err != nil {
			return n, fmt.Errorf("failed to decode %s: %w", n.ID, err)
		}
		if len(je.Fields) == 0 {
			return n, ErrNoFields
		}
		n.Source = je.Source
		n.ReceivedAt = je.ReceivedAt
		n.Fields = je.Fields
		return n, nil
	default:
		return n, fmt.Errorf("%w: %s", ErrUnknownFormat, n.ID)
	}
}

func (s *implSpool) Ack(ctx context.Context, entries ...Entry) error {
	var errs []error
	for _, e := range entries {
		err := os.Remove(filepath.Join(s.cfg.Dir, e.Name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to ack %s: %w", e.Name, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	s.l.Debugf(ctx, "spool: acked %d entries", len(entries))
	return nil
}

func (s *implSpool) Write(ctx context.Context, n model.Notification) (string, error) {
	if len(n.Fields) == 0 {
		return "", ErrNoFields
	}
	if n.ReceivedAt.IsZero() {
		n.ReceivedAt = time.Now().UTC()
	}
	if n.Source == "" {
		n.Source = model.SourceManual
	}

	raw, err := json.Marshal(jsonEntry{
		Source:     n.Source,
		ReceivedAt: n.ReceivedAt,
		Fields:     n.Fields,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	// Zero-padded nanoseconds keep filename order equal to arrival order.
	name := fmt.Sprintf("%020d-%s%s", n.ReceivedAt.UnixNano(), uuid.NewString(), ExtJSON)
	if err := atomic.WriteFile(filepath.Join(s.cfg.Dir, name), bytes.NewReader(raw)); err != nil {
		return "", fmt.Errorf("failed to write spool entry: %w", err)
	}

	s.l.Infof(ctx, "spool: wrote %s (%s)", name, n.Source)
	return name, nil
}
