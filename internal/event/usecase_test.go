package event_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-tagger/internal/event"
	"release-tagger/internal/model"
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

type mockWatchList struct {
	projects map[string]struct{}
	err      error
}

func (m *mockWatchList) Watched(ctx context.Context) (map[string]struct{}, error) {
	return m.projects, m.err
}

func (m *mockWatchList) IsWatched(ctx context.Context, project string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.projects[project]
	return ok, nil
}

type mockResolver struct {
	next  map[string][]string
	err   error
	calls int
}

func (m *mockResolver) NextBranches(ctx context.Context, project string) ([]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.next[project], nil
}

var deploySlugRe = regexp.MustCompile(`^mw\d+\.\d+\.\d+-wmf\.\d+$`)

func newUseCase(resolver *mockResolver) event.UseCase {
	wl := &mockWatchList{projects: map[string]struct{}{
		"mediawiki/core": {},
		"mediawiki/extensions/LabeledSectionTransclusion": {},
		"mediawiki/extensions/Echo":                       {},
	}}
	cfg := event.Config{GerritURL: "https://gerrit.wikimedia.org/r", PrimaryProject: "mediawiki/core"}
	return event.New(wl, resolver, cfg, &mockLogger{})
}

func defaultResolver() *mockResolver {
	return &mockResolver{next: map[string][]string{
		"mediawiki/core": {"wmf/1.35.0-wmf.17"},
		"mediawiki/extensions/LabeledSectionTransclusion": {"wmf/1.35.0-wmf.17"},
	}}
}

func notification(fields map[string]string) model.Notification {
	return model.Notification{ID: "test", Source: model.SourceMail, Fields: fields}
}

func TestNormalizeSkips(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(defaultResolver())

	tests := []struct {
		name   string
		fields map[string]string
		reason string
	}{
		{
			name: "Project not watched",
			fields: map[string]string{
				"X-Gerrit-Project":     "operations/mediawiki-config",
				"X-Gerrit-MessageType": "merged",
				"Bug":                  "T1234",
			},
			reason: "Project operations/mediawiki-config is not being watched",
		},
		{
			name: "Not merged",
			fields: map[string]string{
				"Gerrit-Project":     "mediawiki/core",
				"Gerrit-MessageType": "comment",
				"Bug":                "T1234",
			},
			reason: "Not a merge email",
		},
		{
			name: "No task",
			fields: map[string]string{
				"Gerrit-Project":     "mediawiki/core",
				"Gerrit-MessageType": "merged",
				"Gerrit-Branch":      "master",
			},
			reason: "No Task ID (Bug, Closes or Task)",
		},
		{
			name: "Unparseable task",
			fields: map[string]string{
				"Gerrit-Project":     "mediawiki/core",
				"Gerrit-MessageType": "merged",
				"Task":               "Ttt",
			},
			reason: "Could not parse bug string 'Ttt'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := uc.Normalize(ctx, notification(tt.fields))
			require.NoError(t, err)
			require.True(t, res.Skipped())
			assert.Equal(t, tt.reason, res.Skip.Reason)
		})
	}
}

func TestNormalizeActions(t *testing.T) {
	ctx := context.Background()

	t.Run("Extension REL branch gets no slug", func(t *testing.T) {
		uc := newUseCase(defaultResolver())
		res, err := uc.Normalize(ctx, notification(map[string]string{
			"X-Gerrit-Project":     "mediawiki/extensions/LabeledSectionTransclusion",
			"X-Gerrit-MessageType": "merged",
			"X-Gerrit-Branch":      "REL1_32",
			"X-Gerrit-ChangeURL":   "<https://gerrit.wikimedia.org/r/473672>",
			"Bug":                  "T207255",
		}))
		require.NoError(t, err)
		require.False(t, res.Skipped())
		assert.Equal(t, model.Action{
			URL:    "https://gerrit.wikimedia.org/r/473672",
			Branch: "REL1_32",
			Task:   207255,
			Slugs:  []model.TagSlug{},
		}, *res.Action)
	})

	t.Run("Extension master resolves to next wmf branch", func(t *testing.T) {
		resolver := defaultResolver()
		uc := newUseCase(resolver)
		res, err := uc.Normalize(ctx, notification(map[string]string{
			"Gerrit-Project":       "mediawiki/extensions/LabeledSectionTransclusion",
			"Gerrit-MessageType":   "merged",
			"Gerrit-Branch":        "master",
			"Gerrit-Change-Number": "472763",
			"Bug":                  "T207255",
		}))
		require.NoError(t, err)
		require.False(t, res.Skipped())
		assert.Equal(t, "master", res.Action.Branch)
		assert.Equal(t, model.TaskRef(207255), res.Action.Task)
		assert.Equal(t, "https://gerrit.wikimedia.org/r/472763", res.Action.URL)
		require.Len(t, res.Action.Slugs, 1)
		assert.Regexp(t, deploySlugRe, string(res.Action.Slugs[0]))
		assert.Equal(t, 1, resolver.calls)
	})

	t.Run("Core master yields one deployment slug", func(t *testing.T) {
		uc := newUseCase(defaultResolver())
		res, err := uc.Normalize(ctx, notification(map[string]string{
			"Gerrit-Project":     "mediawiki/core",
			"Gerrit-MessageType": "merged",
			"Gerrit-Branch":      "master",
			"Bug":                "T241354",
		}))
		require.NoError(t, err)
		require.Len(t, res.Action.Slugs, 1)
		assert.Regexp(t, deploySlugRe, string(res.Action.Slugs[0]))
	})

	t.Run("Core master keeps a suggested REL branch", func(t *testing.T) {
		resolver := defaultResolver()
		resolver.next["mediawiki/core"] = []string{"wmf/1.35.0-wmf.17", "REL1_35"}
		uc := newUseCase(resolver)
		res, err := uc.Normalize(ctx, notification(map[string]string{
			"Gerrit-Project":     "mediawiki/core",
			"Gerrit-MessageType": "merged",
			"Gerrit-Branch":      "master",
			"Bug":                "T241354",
		}))
		require.NoError(t, err)
		assert.Equal(t, []model.TagSlug{"mw1.35.0-wmf.17", "mw1.35"}, res.Action.Slugs)
	})

	t.Run("Extension drops a resolved REL branch", func(t *testing.T) {
		resolver := defaultResolver()
		resolver.next["mediawiki/extensions/Echo"] = []string{"wmf/1.35.0-wmf.17", "REL1_35"}
		uc := newUseCase(resolver)
		res, err := uc.Normalize(ctx, notification(map[string]string{
			"Gerrit-Project":     "mediawiki/extensions/Echo",
			"Gerrit-MessageType": "merged",
			"Gerrit-Branch":      "master",
			"Bug":                "T1",
		}))
		require.NoError(t, err)
		assert.Equal(t, []model.TagSlug{"mw1.35.0-wmf.17"}, res.Action.Slugs)
	})

	t.Run("wmf branch maps directly", func(t *testing.T) {
		resolver := defaultResolver()
		uc := newUseCase(resolver)
		res, err := uc.Normalize(ctx, notification(map[string]string{
			"Gerrit-Project":     "mediawiki/core",
			"Gerrit-MessageType": "merged",
			"Gerrit-Branch":      "wmf/1.35.0-wmf.16",
			"X-Gerrit-ChangeURL": "<https://gerrit.wikimedia.org/r/566586>",
			"Bug":                "T243125",
		}))
		require.NoError(t, err)
		assert.Equal(t, model.Action{
			URL:    "https://gerrit.wikimedia.org/r/566586",
			Branch: "wmf/1.35.0-wmf.16",
			Task:   243125,
			Slugs:  []model.TagSlug{"mw1.35.0-wmf.16"},
		}, *res.Action)
		assert.Zero(t, resolver.calls)
	})

	t.Run("Unsupported branch is kept without slugs", func(t *testing.T) {
		uc := newUseCase(defaultResolver())
		res, err := uc.Normalize(ctx, notification(map[string]string{
			"Gerrit-Project":     "mediawiki/extensions/Echo",
			"Gerrit-MessageType": "merged",
			"Gerrit-Branch":      "wmf_deploy",
			"Closes":             "T196090",
		}))
		require.NoError(t, err)
		assert.Equal(t, "wmf_deploy", res.Action.Branch)
		assert.Equal(t, model.TaskRef(196090), res.Action.Task)
		assert.Empty(t, res.Action.Slugs)
	})
}

func TestNormalizeErrors(t *testing.T) {
	ctx := context.Background()
	fields := map[string]string{
		"Gerrit-Project":     "mediawiki/core",
		"Gerrit-MessageType": "merged",
		"Gerrit-Branch":      "master",
		"Bug":                "T1",
	}

	t.Run("Resolver failure stops the run", func(t *testing.T) {
		boom := errors.New("no wmf branch")
		uc := newUseCase(&mockResolver{err: boom})
		_, err := uc.Normalize(ctx, notification(fields))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Watch list failure stops the run", func(t *testing.T) {
		boom := errors.New("gerrit down")
		wl := &mockWatchList{err: boom}
		uc := event.New(wl, defaultResolver(), event.Config{PrimaryProject: "mediawiki/core"}, &mockLogger{})
		_, err := uc.Normalize(ctx, notification(fields))
		assert.ErrorIs(t, err, boom)
	})
}
