package crm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
)

func TestOpportunity_StageProgression(t *testing.T) {
	o := NewOpportunity(id.New(), "Big deal")
	assert.Equal(t, StageLead, o.Stage)

	require.NoError(t, o.MoveStage(StageQualified))
	require.NoError(t, o.MoveStage(StageProposal))
	require.NoError(t, o.MoveStage(StageWon))
	assert.Equal(t, StageWon, o.Stage)
}

func TestOpportunity_TerminalStageLocked(t *testing.T) {
	o := NewOpportunity(id.New(), "Lost cause")
	require.NoError(t, o.MoveStage(StageLost))

	err := o.MoveStage(StageQualified)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidStateTransition))
}

func TestOpportunity_UnknownStage(t *testing.T) {
	o := NewOpportunity(id.New(), "Deal")

	err := o.MoveStage(Stage("negotiation"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestActivity_Complete(t *testing.T) {
	a := NewActivity(id.New(), ActivityCall, "Follow-up call", time.Now().Add(24*time.Hour))
	require.False(t, a.Done)

	now := time.Now().UTC()
	require.NoError(t, a.Complete(now))
	assert.True(t, a.Done)
	require.NotNil(t, a.CompletedAt)
	assert.Equal(t, now, *a.CompletedAt)

	err := a.Complete(now)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidStateTransition))
}

func TestActivity_IsOverdue(t *testing.T) {
	due := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	a := NewActivity(id.New(), ActivityTask, "Send proposal", due)

	assert.True(t, a.IsOverdue(due.AddDate(0, 0, 5)))
	assert.False(t, a.IsOverdue(due.AddDate(0, 0, -1)))

	require.NoError(t, a.Complete(due.AddDate(0, 0, 3)))
	assert.False(t, a.IsOverdue(due.AddDate(0, 0, 5)), "done activities are never overdue")
}

func TestActivity_Validate(t *testing.T) {
	a := NewActivity(id.New(), ActivityType("fax"), "Subject", time.Now())
	err := a.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	a.Type = ActivityEmail
	require.NoError(t, a.Validate(context.Background()))
}
