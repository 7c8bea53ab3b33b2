package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
)

var today = time.Date(2026, 10, 17, 13, 0, 0, 0, time.UTC)

func decodeCreate(t *testing.T, body string) (dto.CreateTaskRequest, error) {
	t.Helper()
	var req dto.CreateTaskRequest
	_, err := DecodeJSON([]byte(body), &req)
	return req, err
}

func decodeUpdate(t *testing.T, body string) (domain.UpdateTaskInput, error) {
	t.Helper()
	var req dto.UpdateTaskRequest
	raw, err := DecodeJSON([]byte(body), &req)
	require.NoError(t, err)
	return BuildUpdateTaskInput(req, raw, today)
}

func requireFieldErrors(t *testing.T, err error, want map[string]string) {
	t.Helper()
	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, len(want))
	for field, messageID := range want {
		require.Contains(t, errs, field)
		require.Equal(t, messageID, errs[field][0].MessageID, field)
	}
}

func TestBuildCreateTaskInput_Valid(t *testing.T) {
	req, err := decodeCreate(t, `{"title":"  Write report ","description":"Q3","status":"pending","priority":"high","due_date":"2026-10-17"}`)
	require.NoError(t, err)

	input, err := BuildCreateTaskInput(req, today)
	require.NoError(t, err)
	require.Equal(t, "Write report", input.Title)
	require.Equal(t, "Q3", *input.Description)
	require.Equal(t, domain.TaskStatusPending, input.Status)
	require.Equal(t, domain.PriorityHigh, input.Priority)
	require.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), *input.DueDate)
}

func TestBuildCreateTaskInput_OrdinalPriority(t *testing.T) {
	req, err := decodeCreate(t, `{"title":"t","status":"completed","priority":0}`)
	require.NoError(t, err)

	input, err := BuildCreateTaskInput(req, today)
	require.NoError(t, err)
	require.Equal(t, domain.PriorityLow, input.Priority)
	require.Nil(t, input.DueDate)
	require.Nil(t, input.Description)
}

func TestBuildCreateTaskInput_MissingFields(t *testing.T) {
	req, err := decodeCreate(t, `{}`)
	require.NoError(t, err)

	_, err = BuildCreateTaskInput(req, today)
	requireFieldErrors(t, err, map[string]string{
		"title":    apierrors.MsgFieldRequired,
		"status":   apierrors.MsgFieldRequired,
		"priority": apierrors.MsgFieldRequired,
	})
}

func TestBuildCreateTaskInput_InvalidValues(t *testing.T) {
	longTitle := make([]byte, domain.TitleMaxLength+1)
	for i := range longTitle {
		longTitle[i] = 'a'
	}

	req, err := decodeCreate(t, `{"title":"`+string(longTitle)+`","status":"blocked","priority":7,"due_date":"2026-10-16"}`)
	require.NoError(t, err)

	_, err = BuildCreateTaskInput(req, today)
	requireFieldErrors(t, err, map[string]string{
		"title":    apierrors.MsgFieldMax,
		"status":   apierrors.MsgFieldIn,
		"priority": apierrors.MsgFieldIn,
		"due_date": apierrors.MsgFieldAfterOrEqualToday,
	})
}

func TestBuildCreateTaskInput_BlankTitleAndBadDate(t *testing.T) {
	req, err := decodeCreate(t, `{"title":"   ","status":"pending","priority":"urgent","due_date":"17/10/2026"}`)
	require.NoError(t, err)

	_, err = BuildCreateTaskInput(req, today)
	requireFieldErrors(t, err, map[string]string{
		"title":    apierrors.MsgFieldRequired,
		"priority": apierrors.MsgFieldIn,
		"due_date": apierrors.MsgFieldDate,
	})
}

func TestDecodeJSON(t *testing.T) {
	var req dto.CreateTaskRequest

	_, err := DecodeJSON([]byte(`{"title":`), &req)
	require.ErrorIs(t, err, ErrMalformedPayload)

	_, err = DecodeJSON([]byte(`[1,2]`), &req)
	require.ErrorIs(t, err, ErrMalformedPayload)

	_, err = DecodeJSON([]byte(`null`), &req)
	require.ErrorIs(t, err, ErrMalformedPayload)

	_, err = DecodeJSON([]byte(`{"title":42}`), &req)
	requireFieldErrors(t, err, map[string]string{"title": apierrors.MsgFieldType})
}

func TestBuildUpdateTaskInput_Partial(t *testing.T) {
	input, err := decodeUpdate(t, `{"status":"completed"}`)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, *input.Status)
	require.Nil(t, input.Title)
	require.False(t, input.DescriptionSet)
	require.False(t, input.DueDateSet)
	require.Nil(t, input.Priority)
}

func TestBuildUpdateTaskInput_NullClearsNullableFields(t *testing.T) {
	input, err := decodeUpdate(t, `{"description":null,"due_date":null}`)
	require.NoError(t, err)
	require.True(t, input.DescriptionSet)
	require.Nil(t, input.Description)
	require.True(t, input.DueDateSet)
	require.Nil(t, input.DueDate)
}

func TestBuildUpdateTaskInput_NullRejectedForRequiredFields(t *testing.T) {
	_, err := decodeUpdate(t, `{"title":null,"status":null,"priority":null}`)
	requireFieldErrors(t, err, map[string]string{
		"title":    apierrors.MsgFieldRequired,
		"status":   apierrors.MsgFieldRequired,
		"priority": apierrors.MsgFieldRequired,
	})
}

func TestBuildUpdateTaskInput_PastDueDate(t *testing.T) {
	_, err := decodeUpdate(t, `{"due_date":"2026-01-01"}`)
	requireFieldErrors(t, err, map[string]string{"due_date": apierrors.MsgFieldAfterOrEqualToday})
}

func TestBuildUpdateTaskInput_NoFields(t *testing.T) {
	_, err := decodeUpdate(t, `{"owner_id":5}`)
	requireFieldErrors(t, err, map[string]string{BodyField: apierrors.MsgFieldNoFields})
}

func TestBuildUpdateTaskInput_PriorityByName(t *testing.T) {
	input, err := decodeUpdate(t, `{"priority":"medium","title":" New "}`)
	require.NoError(t, err)
	require.Equal(t, domain.PriorityMedium, *input.Priority)
	require.Equal(t, "New", *input.Title)
}
