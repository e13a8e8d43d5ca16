// Package runcache holds the lookups that stay valid for one batch run:
// next branches per project, slug to tag identifier, and the watch list.
// A new Cache is created for every run and never persisted.
package runcache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"release-tagger/internal/model"
)

// DefaultSize bounds the next branch cache; a run touches far fewer projects.
const DefaultSize = 4096

// Cache is not safe for concurrent use.
//
// Only next branches are bounded: an evicted project is listed again. Tag
// identifiers are kept for the whole run because reconciliation reads them
// back after resolving.
type Cache struct {
	next    *lru.Cache[string, []string]
	tags    map[model.TagSlug]model.TagIdentifier
	watched map[string]struct{}
}

// New creates an empty cache. size <= 0 uses DefaultSize.
func New(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	next, _ := lru.New[string, []string](size)
	return &Cache{
		next: next,
		tags: make(map[model.TagSlug]model.TagIdentifier),
	}
}

// NextBranches returns the branches a master merge of project ships in.
func (c *Cache) NextBranches(project string) ([]string, bool) {
	return c.next.Get(project)
}

func (c *Cache) SetNextBranches(project string, branches []string) {
	c.next.Add(project, branches)
}

func (c *Cache) Tag(slug model.TagSlug) (model.TagIdentifier, bool) {
	id, ok := c.tags[slug]
	return id, ok
}

func (c *Cache) SetTag(slug model.TagSlug, id model.TagIdentifier) {
	c.tags[slug] = id
}

// MissingTags returns the slugs that have not been resolved yet, deduplicated
// and in first-seen order.
func (c *Cache) MissingTags(slugs []model.TagSlug) []model.TagSlug {
	seen := make(map[model.TagSlug]bool, len(slugs))
	missing := make([]model.TagSlug, 0)
	for _, s := range slugs {
		if seen[s] {
			continue
		}
		seen[s] = true
		if _, ok := c.tags[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

func (c *Cache) Watched() (map[string]struct{}, bool) {
	return c.watched, c.watched != nil
}

func (c *Cache) SetWatched(projects map[string]struct{}) {
	c.watched = projects
}
