package spool

import (
	"strings"
	"time"

	"release-tagger/internal/model"
)

const (
	ExtMail = ".eml"
	ExtJSON = ".json"
)

// bugFooters are the body lines kept besides the Gerrit-* footers.
var bugFooters = map[string]bool{
	"Bug":    true,
	"Task":   true,
	"Closes": true,
}

var gerritHeaders = func() map[string]string {
	names := []string{
		"X-Gerrit-MessageType",
		"X-Gerrit-Change-Id",
		"X-Gerrit-Change-Number",
		"X-Gerrit-ChangeURL",
		"X-Gerrit-Commit",
		"X-Gerrit-PatchSet",
		"X-Gerrit-Project",
		"X-Gerrit-Branch",
	}
	m := make(map[string]string, len(names))
	for _, n := range names {
		m[strings.ToLower(n)] = n
	}
	return m
}()

type Config struct {
	Dir string
	// Sender is the address Gerrit notification mails are sent from.
	Sender string
}

// Entry is one file of the spool.
type Entry struct {
	Name         string
	Notification model.Notification
	Err          error
}

// jsonEntry is the on-disk form of a spooled webhook notification.
type jsonEntry struct {
	Source     model.NotificationSource `json:"source"`
	ReceivedAt time.Time                `json:"received_at"`
	Fields     map[string]string        `json:"fields"`
}
