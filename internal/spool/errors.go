package spool

import "errors"

var (
	ErrForeignSender = errors.New("mail was not sent by gerrit")
	ErrEmptyMail     = errors.New("mail has no payload")
	ErrNoFields      = errors.New("no gerrit fields found")
	ErrUnknownFormat = errors.New("not an .eml or .json notification")
)
