package domain

import (
	"errors"
	"time"
)

// StudyStatus represents the processing state of a study.
type StudyStatus string

// Possible study status values. The names are part of the persisted data
// and the dashboard contract, so they stay in Portuguese.
const (
	StudyStatusProcessing StudyStatus = "processando"
	StudyStatusReady      StudyStatus = "pronto"
	StudyStatusFailed     StudyStatus = "falha"
)

// Common validation errors for Study
var (
	ErrEmptyStudyUserID       = errors.New("study user ID cannot be empty")
	ErrEmptyStudyTitle        = errors.New("study title cannot be empty")
	ErrEmptyStudyFile         = errors.New("study file reference cannot be empty")
	ErrInvalidStudyStatus     = errors.New("invalid study status")
	ErrInvalidStudyTransition = errors.New("invalid study status transition")
	ErrEmptyStudySummary      = errors.New("study summary cannot be empty")
	ErrStudyNotReady          = errors.New("study is not ready")
)

// Study represents one uploaded document and its AI-derived artifacts.
// It is created in the processing state by the web tier at upload time and
// moved to a terminal state (ready or failed) exclusively by the worker.
type Study struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"user_id"`
	Title      string      `json:"titulo"`
	Summary    string      `json:"resumo"`
	Status     StudyStatus `json:"status"`
	FileKey    string      `json:"caminho_arquivo"`
	Diagnostic string      `json:"-"`
	CreatedAt  time.Time   `json:"data_criacao"`
}

// NewStudy creates a new Study in the processing state for the given owner
// and stored file key. Returns an error if validation fails.
func NewStudy(userID int64, title, fileKey string) (*Study, error) {
	study := &Study{
		UserID:    userID,
		Title:     title,
		Summary:   "Aguardando processamento da IA...",
		Status:    StudyStatusProcessing,
		FileKey:   fileKey,
		CreatedAt: time.Now().UTC(),
	}

	if err := study.Validate(); err != nil {
		return nil, err
	}

	return study, nil
}

// Validate checks if the Study has valid data.
func (s *Study) Validate() error {
	if s.UserID <= 0 {
		return ErrEmptyStudyUserID
	}

	if s.Title == "" {
		return ErrEmptyStudyTitle
	}

	if s.FileKey == "" {
		return ErrEmptyStudyFile
	}

	if !isValidStudyStatus(s.Status) {
		return ErrInvalidStudyStatus
	}

	return nil
}

// MarkReady transitions the study to the ready state, recording the
// generated summary. Only a study in the processing state can move forward;
// terminal states never change again.
func (s *Study) MarkReady(summary string) error {
	if s.Status != StudyStatusProcessing {
		return ErrInvalidStudyTransition
	}

	if summary == "" {
		return ErrEmptyStudySummary
	}

	s.Status = StudyStatusReady
	s.Summary = summary
	s.Diagnostic = ""
	return nil
}

// MarkFailed transitions the study to the failed state with a diagnostic
// message for the logs. The diagnostic is never exposed to end users.
func (s *Study) MarkFailed(diagnostic string) error {
	if s.Status != StudyStatusProcessing {
		return ErrInvalidStudyTransition
	}

	s.Status = StudyStatusFailed
	s.Diagnostic = diagnostic
	return nil
}

// IsReady reports whether the study reached the terminal success state.
func (s *Study) IsReady() bool {
	return s.Status == StudyStatusReady
}

// isValidStudyStatus checks if the given status is a valid StudyStatus.
func isValidStudyStatus(status StudyStatus) bool {
	switch status {
	case StudyStatusProcessing, StudyStatusReady, StudyStatusFailed:
		return true
	default:
		return false
	}
}
