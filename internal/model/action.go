package model

// Action is what one in-scope merge notification asks for: tag Task with Slugs.
type Action struct {
	URL    string    `json:"url"`    // Change URL
	Branch string    `json:"branch"` // Branch as notified, before resolving "master"
	Task   TaskRef   `json:"task"`
	Slugs  []TagSlug `json:"slugs"`
}

// Skip explains why a notification produced no Action.
type Skip struct {
	Reason string `json:"reason"`
}

// Result is either an Action or a Skip, never both.
type Result struct {
	Action *Action `json:"action,omitempty"`
	Skip   *Skip   `json:"skip,omitempty"`
}

func NewActionResult(a Action) Result {
	return Result{Action: &a}
}

func NewSkipResult(reason string) Result {
	return Result{Skip: &Skip{Reason: reason}}
}

// Skipped reports whether the notification was excluded.
func (r Result) Skipped() bool {
	return r.Skip != nil
}
