// Package session keeps interview sessions between events. Every store hands
// out copies, so callers never share a *interview.Session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spigell/hirely/internal/interview"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Get(ctx context.Context, id string) (*interview.Session, error)
	Save(ctx context.Context, s *interview.Session) error
	Delete(ctx context.Context, id string) error
}

func encode(s *interview.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding session %s: %w", s.ID, err)
	}
	return data, nil
}

func decode(data []byte) (*interview.Session, error) {
	var s interview.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	if s.TechnicalAnswers == nil {
		s.TechnicalAnswers = map[int]interview.AnswerRecord{}
	}
	if s.ProjectAnswers == nil {
		s.ProjectAnswers = map[int]interview.AnswerRecord{}
	}
	return &s, nil
}
