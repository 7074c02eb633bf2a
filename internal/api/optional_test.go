package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	t.Parallel()

	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New","description":null}`), &req))

	assert.True(t, req.Title.Set)
	assert.False(t, req.Title.Null)
	assert.Equal(t, "New", req.Title.Value)

	assert.True(t, req.Description.Set)
	assert.True(t, req.Description.Null)
	assert.Empty(t, req.Description.Value)

	assert.False(t, req.Status.Set)
	assert.False(t, req.DueDate.Set)
}

func TestDueDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: `"2026-05-01"`, want: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{in: `"2026-05-01T10:00:00Z"`, want: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)},
		{in: `"2026-05-01T10:00:00.5-05:00"`, want: time.Date(2026, 5, 1, 15, 0, 0, 500_000_000, time.UTC)},
		{in: `"05/01/2026"`, wantErr: true},
		{in: `"2026-13-01"`, wantErr: true},
		{in: `20260501`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			var d DueDate
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDueDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), "got %s", d.Time)
			assert.Equal(t, time.UTC, d.Location())
		})
	}
}

func TestUpdateTaskRequestToPatch(t *testing.T) {
	t.Parallel()

	categoryID := uuid.New()

	t.Run("absent fields stay out of the patch", func(t *testing.T) {
		t.Parallel()
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
		patch, err := req.toPatch()
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
	})

	t.Run("null due date and category clear them", func(t *testing.T) {
		t.Parallel()
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null,"category":null}`), &req))
		patch, err := req.toPatch()
		require.NoError(t, err)
		assert.True(t, patch.SetDueDate)
		assert.Nil(t, patch.DueDate)
		assert.True(t, patch.SetCategory)
		assert.Nil(t, patch.CategoryID)
	})

	t.Run("values are carried", func(t *testing.T) {
		t.Parallel()
		var req UpdateTaskRequest
		body := `{"title":"T","status":"done","dueDate":"2026-01-02","category":"` + categoryID.String() + `"}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		patch, err := req.toPatch()
		require.NoError(t, err)
		assert.Equal(t, "T", *patch.Title)
		assert.Equal(t, "done", *patch.Status)
		require.NotNil(t, patch.DueDate)
		assert.Equal(t, 2, patch.DueDate.Day())
		require.NotNil(t, patch.CategoryID)
		assert.Equal(t, categoryID, *patch.CategoryID)
	})

	t.Run("bad category id", func(t *testing.T) {
		t.Parallel()
		req := UpdateTaskRequest{Category: Optional[string]{Set: true, Value: "nope"}}
		_, err := req.toPatch()
		assert.EqualError(t, err, "Invalid category ID")
	})
}
