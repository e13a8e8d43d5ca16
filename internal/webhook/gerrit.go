package webhook

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// footerKeys are the commit message footers a mail notification would repeat.
var footerKeys = map[string]bool{
	"Bug":    true,
	"Task":   true,
	"Closes": true,
}

// ParseGerritEvent decodes a Gerrit event payload.
func ParseGerritEvent(payload []byte) (*GerritEvent, error) {
	var event GerritEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse gerrit event: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("gerrit event has no type")
	}
	return &event, nil
}

// Fields renders a change-merged event with the field names of a merge mail,
// so spooled webhook events and mails normalize the same way.
func (e *GerritEvent) Fields() map[string]string {
	fields := map[string]string{
		"Gerrit-MessageType": "merged",
		"Gerrit-Project":     e.Change.Project,
		"Gerrit-Branch":      strings.TrimPrefix(e.Change.Branch, "refs/heads/"),
		"Gerrit-Change-Id":   e.Change.ID,
	}
	if e.Change.Number > 0 {
		fields["Gerrit-Change-Number"] = strconv.Itoa(e.Change.Number)
	}
	if e.Change.URL != "" {
		fields["X-Gerrit-ChangeURL"] = "<" + e.Change.URL + ">"
	}
	if e.PatchSet.Number > 0 {
		fields["Gerrit-PatchSet"] = strconv.Itoa(e.PatchSet.Number)
	}
	if rev := e.NewRev; rev != "" {
		fields["Gerrit-Commit"] = rev
	} else if e.PatchSet.Revision != "" {
		fields["Gerrit-Commit"] = e.PatchSet.Revision
	}

	for _, line := range strings.Split(e.Change.CommitMessage, "\n") {
		key, value, ok := strings.Cut(line, ": ")
		if ok && footerKeys[key] {
			fields[key] = strings.TrimSpace(value)
		}
	}
	return fields
}
