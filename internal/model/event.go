package model

import "time"

// NotificationSource represents how a notification entered the spool
type NotificationSource string

const (
	SourceMail    NotificationSource = "mail"
	SourceWebhook NotificationSource = "webhook"
	SourceManual  NotificationSource = "manual"
)

// Notification is one merge notification waiting in the backlog
type Notification struct {
	ID         string             // Spool entry name
	Source     NotificationSource // Where it came from
	Fields     map[string]string  // Gerrit header/footer fields (e.g. "Gerrit-Project")
	ReceivedAt time.Time          // When it was spooled
}

// Field returns the first non-empty value among keys.
func (n Notification) Field(keys ...string) string {
	for _, k := range keys {
		if v := n.Fields[k]; v != "" {
			return v
		}
	}
	return ""
}

// BranchRef is one entry of a repository's branch list
type BranchRef struct {
	Ref      string `json:"ref"`      // e.g. "refs/heads/wmf/1.35.0-wmf.15"
	Revision string `json:"revision"` // Commit SHA
}
