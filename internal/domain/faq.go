package domain

import "time"

// FAQ is a question with a canned answer.
type FAQ struct {
	ID        string
	Question  string
	Answer    string
	CreatedAt time.Time
}
