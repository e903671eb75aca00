// Package service implements the application use cases on top of the
// store, storage, queue and generation layers.
package service

import "errors"

var (
	// ErrStudyNotOwned indicates the authenticated user does not own the
	// requested study.
	ErrStudyNotOwned = errors.New("study does not belong to user")

	// ErrUnsupportedFile indicates the uploaded file extension is not
	// accepted. Checked before anything is persisted.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrNoAnswers indicates a grading request carried no answers.
	ErrNoAnswers = errors.New("no answers submitted")
)
