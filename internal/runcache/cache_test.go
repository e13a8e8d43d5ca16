package runcache_test

import (
	"reflect"
	"testing"

	"release-tagger/internal/model"
	"release-tagger/internal/runcache"
)

func TestCache(t *testing.T) {
	c := runcache.New(0)

	t.Run("NextBranches", func(t *testing.T) {
		if _, ok := c.NextBranches("mediawiki/core"); ok {
			t.Fatal("expected empty cache")
		}
		next := []string{"wmf/1.35.0-wmf.16"}
		c.SetNextBranches("mediawiki/core", next)
		got, ok := c.NextBranches("mediawiki/core")
		if !ok || !reflect.DeepEqual(got, next) {
			t.Errorf("unexpected branches: %v", got)
		}
	})

	t.Run("Tags", func(t *testing.T) {
		c.SetTag("mw1.35", "PHID-PROJ-1")
		missing := c.MissingTags([]model.TagSlug{"mw1.35", "mw1.36", "mw1.36", "mw1.37"})
		want := []model.TagSlug{"mw1.36", "mw1.37"}
		if !reflect.DeepEqual(missing, want) {
			t.Errorf("MissingTags() = %v, want %v", missing, want)
		}
		if id, ok := c.Tag("mw1.35"); !ok || id != "PHID-PROJ-1" {
			t.Errorf("unexpected tag %q", id)
		}
	})

	t.Run("Tags outlive the size bound", func(t *testing.T) {
		small := runcache.New(1)
		small.SetTag("mw1.35.0-wmf.16", "PHID-PROJ-wmf16")
		small.SetTag("mw1.35.0-wmf.17", "PHID-PROJ-wmf17")
		if id, ok := small.Tag("mw1.35.0-wmf.16"); !ok || id != "PHID-PROJ-wmf16" {
			t.Errorf("first tag lost: %q %v", id, ok)
		}
		if missing := small.MissingTags([]model.TagSlug{"mw1.35.0-wmf.16", "mw1.35.0-wmf.17"}); len(missing) != 0 {
			t.Errorf("MissingTags() = %v, want none", missing)
		}
	})

	t.Run("Next branches are bounded", func(t *testing.T) {
		small := runcache.New(1)
		small.SetNextBranches("mediawiki/core", []string{"wmf/1.35.0-wmf.16"})
		small.SetNextBranches("mediawiki/extensions/Echo", []string{"wmf/1.35.0-wmf.16"})
		if _, ok := small.NextBranches("mediawiki/core"); ok {
			t.Error("oldest project must be evicted")
		}
		if _, ok := small.NextBranches("mediawiki/extensions/Echo"); !ok {
			t.Error("newest project must stay cached")
		}
	})

	t.Run("Watched", func(t *testing.T) {
		if _, ok := c.Watched(); ok {
			t.Fatal("watch list must start unset")
		}
		c.SetWatched(map[string]struct{}{"mediawiki/core": {}})
		w, ok := c.Watched()
		if !ok || len(w) != 1 {
			t.Errorf("unexpected watch list %v", w)
		}
	})

	t.Run("Runs are isolated", func(t *testing.T) {
		fresh := runcache.New(10)
		if _, ok := fresh.Tag("mw1.35"); ok {
			t.Error("new cache must not see entries of another run")
		}
	})
}
