package spool

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

// ParseMail extracts the Gerrit fields of a notification mail: every X-Gerrit-*
// header plus the Gerrit-*, Bug, Task and Closes footers of the body. Later
// footers override earlier ones.
func ParseMail(r io.Reader, sender string) (map[string]string, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read mail: %w", err)
	}

	from := msg.Header.Get("From")
	if sender != "" && !fromSender(from, sender) {
		return nil, fmt.Errorf("%w: %s", ErrForeignSender, from)
	}

	body, err := decodeBody(msg)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMail
	}

	fields := make(map[string]string)
	for key, values := range msg.Header {
		if strings.HasPrefix(key, "X-Gerrit") && len(values) > 0 {
			fields[headerName(key)] = values[0]
		}
	}
	for _, line := range strings.Split(body, "\n") {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		if strings.HasPrefix(key, "Gerrit-") || bugFooters[key] {
			fields[key] = strings.TrimRight(value, " \t\r")
		}
	}

	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	return fields, nil
}

func fromSender(from, sender string) bool {
	if addr, err := mail.ParseAddress(from); err == nil {
		return strings.EqualFold(addr.Address, sender)
	}
	return strings.Contains(strings.ToLower(from), strings.ToLower(sender))
}

func decodeBody(msg *mail.Message) (string, error) {
	var r io.Reader = msg.Body
	switch strings.ToLower(strings.TrimSpace(msg.Header.Get("Content-Transfer-Encoding"))) {
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode mail body: %w", err)
	}
	return strings.ToValidUTF8(string(raw), "�"), nil
}

// headerName undoes MIME canonicalization for the headers Gerrit spells with
// inner capitals (X-Gerrit-ChangeURL arrives as X-Gerrit-Changeurl).
func headerName(key string) string {
	if name, ok := gerritHeaders[strings.ToLower(key)]; ok {
		return name
	}
	return key
}
