package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudy(t *testing.T) {
	study, err := NewStudy(7, "Notas de aula", "notes.pdf")
	require.NoError(t, err)

	assert.Equal(t, int64(7), study.UserID)
	assert.Equal(t, "Notas de aula", study.Title)
	assert.Equal(t, "notes.pdf", study.FileKey)
	assert.Equal(t, StudyStatusProcessing, study.Status)
	assert.False(t, study.IsReady())
	assert.False(t, study.CreatedAt.IsZero())
}

func TestNewStudyValidation(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		title   string
		fileKey string
		wantErr error
	}{
		{"missing owner", 0, "title", "file.txt", ErrEmptyStudyUserID},
		{"missing title", 1, "", "file.txt", ErrEmptyStudyTitle},
		{"missing file", 1, "title", "", ErrEmptyStudyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStudy(tt.userID, tt.title, tt.fileKey)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStudyMarkReady(t *testing.T) {
	study, err := NewStudy(1, "title", "file.txt")
	require.NoError(t, err)

	err = study.MarkReady("um resumo")
	require.NoError(t, err)

	assert.Equal(t, StudyStatusReady, study.Status)
	assert.Equal(t, "um resumo", study.Summary)
	assert.True(t, study.IsReady())

	// Terminal states never move again.
	assert.ErrorIs(t, study.MarkReady("outro"), ErrInvalidStudyTransition)
	assert.ErrorIs(t, study.MarkFailed("boom"), ErrInvalidStudyTransition)
}

func TestStudyMarkReadyRequiresSummary(t *testing.T) {
	study, err := NewStudy(1, "title", "file.txt")
	require.NoError(t, err)

	assert.ErrorIs(t, study.MarkReady(""), ErrEmptyStudySummary)
	assert.Equal(t, StudyStatusProcessing, study.Status)
}

func TestStudyMarkFailed(t *testing.T) {
	study, err := NewStudy(1, "title", "file.txt")
	require.NoError(t, err)

	err = study.MarkFailed("loader exploded")
	require.NoError(t, err)

	assert.Equal(t, StudyStatusFailed, study.Status)
	assert.Equal(t, "loader exploded", study.Diagnostic)

	// No way back from a terminal failure.
	assert.ErrorIs(t, study.MarkReady("resumo"), ErrInvalidStudyTransition)
}

func TestStudyValidateStatus(t *testing.T) {
	study, err := NewStudy(1, "title", "file.txt")
	require.NoError(t, err)

	study.Status = StudyStatus("pendente")
	assert.ErrorIs(t, study.Validate(), ErrInvalidStudyStatus)
}
