package queue

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Task is the wire message describing one document to process. The field
// names are the queue contract; the worker and any other consumer depend
// on them verbatim.
type Task struct {
	EstudoID int64  `json:"estudo_id"`
	Filename string `json:"filename"`
	UserID   int64  `json:"user_id"`
}

// Validate checks the task references real entities.
func (t Task) Validate() error {
	if t.EstudoID <= 0 {
		return errors.New("task estudo_id must be positive")
	}
	if t.Filename == "" {
		return errors.New("task filename cannot be empty")
	}
	if t.UserID <= 0 {
		return errors.New("task user_id must be positive")
	}
	return nil
}

// Encode serializes the task for publication.
func (t Task) Encode() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(t)
}

// DecodeTask parses and validates a task from a message body.
func DecodeTask(body []byte) (Task, error) {
	var t Task
	if err := json.Unmarshal(body, &t); err != nil {
		return Task{}, fmt.Errorf("malformed task message: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Task{}, fmt.Errorf("invalid task message: %w", err)
	}
	return t, nil
}
