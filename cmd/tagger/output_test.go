package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-tagger/internal/model"
	"release-tagger/internal/reconcile"
	"release-tagger/internal/runner"
)

func TestWriteResult(t *testing.T) {
	action := model.NewActionResult(model.Action{
		URL:    "https://gerrit.wikimedia.org/r/566586",
		Branch: "master",
		Task:   243125,
		Slugs:  []model.TagSlug{"mw1.35.0-wmf.17"},
	})

	t.Run("Text action", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResult(&buf, "text", action))
		assert.Contains(t, buf.String(), "task:   T243125")
		assert.Contains(t, buf.String(), "[mw1.35.0-wmf.17]")
	})

	t.Run("Text skip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResult(&buf, "text", model.NewSkipResult("Not a merge email")))
		assert.Equal(t, "skip: Not a merge email\n", buf.String())
	})

	t.Run("JSON action", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResult(&buf, "json", action))
		var got model.Result
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.NotNil(t, got.Action)
		assert.Equal(t, model.TaskRef(243125), got.Action.Task)
		assert.Nil(t, got.Skip)
	})
}

func TestWriteSummary(t *testing.T) {
	summary := runner.Summary{
		RunID:   "run-1",
		Entries: 3,
		Report: reconcile.Report{
			Updated:   []reconcile.TaskUpdate{{Task: 1, Added: []model.TagSlug{"mw1.35"}}},
			Unchanged: []model.TaskRef{2},
			Failures:  []*reconcile.TaskFailure{{Task: 3, Err: errors.New("boom")}},
		},
	}

	var text bytes.Buffer
	require.NoError(t, writeSummary(&text, "text", summary))
	assert.True(t, strings.HasPrefix(text.String(), "run run-1: 3 entries"))
	assert.Contains(t, text.String(), "tagged T1 with [mw1.35]")
	assert.Contains(t, text.String(), "failed T3: boom")

	var js bytes.Buffer
	require.NoError(t, writeSummary(&js, "json", summary))
	var out map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &out))
	assert.Equal(t, "run-1", out["run_id"])
	assert.Equal(t, []any{float64(1)}, out["updated"])
	assert.Equal(t, []any{float64(3)}, out["failed"])
}

func TestRootCommandRejectsFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "yaml", "normalize", "x.eml"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
