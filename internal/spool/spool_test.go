package spool_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-tagger/internal/model"
	"release-tagger/internal/spool"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

const mergedMail = "From: \"jenkins-bot (Code Review)\" <gerrit@wikimedia.org>\r\n" +
	"To: someone@example.org\r\n" +
	"Subject: [Gerrit] mediawiki/core[master]: Fix things\r\n" +
	"X-Gerrit-MessageType: merged\r\n" +
	"X-Gerrit-Change-Id: I650cd2615ebac862e1b5fcff3707f4caf7f56944\r\n" +
	"X-Gerrit-ChangeURL: <https://gerrit.wikimedia.org/r/566586>\r\n" +
	"X-Gerrit-Commit: 0123456789abcdef\r\n" +
	"Content-Type: text/plain; charset=UTF-8\r\n" +
	"\r\n" +
	"jenkins-bot has submitted this change and it was merged.\n" +
	"\n" +
	"Bug: T1000\n" +
	"Bug: T243125\n" +
	"  Gerrit-Indented: ignored\n" +
	"Unrelated: value\n" +
	"Gerrit-Project: mediawiki/core\n" +
	"Gerrit-Branch: master   \n" +
	"Gerrit-MessageType: merged\n"

func newSpool(t *testing.T) (spool.Spool, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "spool")
	s, err := spool.New(spool.Config{Dir: dir, Sender: "gerrit@wikimedia.org"}, &mockLogger{})
	require.NoError(t, err)
	return s, dir
}

func TestParseMail(t *testing.T) {
	fields, err := spool.ParseMail(strings.NewReader(mergedMail), "gerrit@wikimedia.org")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"X-Gerrit-MessageType": "merged",
		"X-Gerrit-Change-Id":   "I650cd2615ebac862e1b5fcff3707f4caf7f56944",
		"X-Gerrit-ChangeURL":   "<https://gerrit.wikimedia.org/r/566586>",
		"X-Gerrit-Commit":      "0123456789abcdef",
		"Bug":                  "T243125",
		"Gerrit-Project":       "mediawiki/core",
		"Gerrit-Branch":        "master",
		"Gerrit-MessageType":   "merged",
	}, fields)
}

func TestParseMailRejects(t *testing.T) {
	t.Run("Foreign sender", func(t *testing.T) {
		raw := strings.Replace(mergedMail, "gerrit@wikimedia.org", "spam@example.org", 1)
		_, err := spool.ParseMail(strings.NewReader(raw), "gerrit@wikimedia.org")
		assert.ErrorIs(t, err, spool.ErrForeignSender)
	})

	t.Run("Empty payload", func(t *testing.T) {
		raw := "From: gerrit@wikimedia.org\r\nX-Gerrit-MessageType: merged\r\n\r\n\n"
		_, err := spool.ParseMail(strings.NewReader(raw), "gerrit@wikimedia.org")
		assert.ErrorIs(t, err, spool.ErrEmptyMail)
	})

	t.Run("Quoted printable body", func(t *testing.T) {
		raw := "From: gerrit@wikimedia.org\r\n" +
			"Content-Transfer-Encoding: quoted-printable\r\n\r\n" +
			"Gerrit-Project: mediawiki/extensions/Lon=\r\ngExtensionName\r\n"
		fields, err := spool.ParseMail(strings.NewReader(raw), "gerrit@wikimedia.org")
		require.NoError(t, err)
		assert.Equal(t, "mediawiki/extensions/LongExtensionName", fields["Gerrit-Project"])
	})
}

func TestSpoolWriteListAck(t *testing.T) {
	ctx := context.Background()
	s, dir := newSpool(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "00000000000000000001-mail.eml"), []byte(mergedMail), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tagger.lock"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	received := time.Date(2020, 1, 21, 10, 0, 0, 0, time.UTC)
	name, err := s.Write(ctx, model.Notification{
		Source:     model.SourceWebhook,
		ReceivedAt: received,
		Fields: map[string]string{
			"Gerrit-Project":     "mediawiki/extensions/Echo",
			"Gerrit-MessageType": "merged",
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, spool.ExtJSON))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "00000000000000000001-mail.eml", entries[0].Name)
	assert.NoError(t, entries[0].Err)
	assert.Equal(t, model.SourceMail, entries[0].Notification.Source)
	assert.Equal(t, "mediawiki/core", entries[0].Notification.Fields["Gerrit-Project"])

	assert.Equal(t, name, entries[1].Name)
	assert.Equal(t, name, entries[1].Notification.ID)
	assert.Equal(t, model.SourceWebhook, entries[1].Notification.Source)
	assert.True(t, received.Equal(entries[1].Notification.ReceivedAt))
	assert.Equal(t, "mediawiki/extensions/Echo", entries[1].Notification.Fields["Gerrit-Project"])

	require.NoError(t, s.Ack(ctx, entries...))
	entries, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Acking twice is harmless.
	require.NoError(t, s.Ack(ctx, spool.Entry{Name: name}))
}

func TestSpoolUnusableEntries(t *testing.T) {
	ctx := context.Background()
	s, dir := newSpool(t)

	foreign := strings.Replace(mergedMail, "gerrit@wikimedia.org", "spam@example.org", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.eml"), []byte(foreign), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("{not json"), 0o644))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.ErrorIs(t, entries[0].Err, spool.ErrForeignSender)
	assert.Error(t, entries[1].Err)
}

func TestSpoolWriteRequiresFields(t *testing.T) {
	s, _ := newSpool(t)
	_, err := s.Write(context.Background(), model.Notification{})
	assert.ErrorIs(t, err, spool.ErrNoFields)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "merged.eml")
	require.NoError(t, os.WriteFile(path, []byte(mergedMail), 0o644))
	n, err := spool.ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "merged.eml", n.ID)
	assert.Equal(t, "T243125", n.Fields["Bug"])

	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	_, err = spool.ReadFile(other, "")
	assert.ErrorIs(t, err, spool.ErrUnknownFormat)
}
