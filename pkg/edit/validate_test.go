package edit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikispan/pkg/edit"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []edit.Edit
		wantErr string
	}{
		{name: "empty"},
		{name: "valid", edits: []edit.Edit{{Start: 0, Stop: 5}, {Start: 5, Stop: 10, Text: "x"}}},
		{name: "negative start", edits: []edit.Edit{{Start: -1, Stop: 5}}, wantErr: "start offset is negative"},
		{name: "stop before start", edits: []edit.Edit{{Start: 5, Stop: 3}}, wantErr: "stop offset is before start offset"},
		{name: "past end", edits: []edit.Edit{{Start: 5, Stop: 15}}, wantErr: "exceeds document length 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := edit.Validate(tt.edits, 10)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *edit.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	prepared, err := edit.Prepare([]edit.Edit{
		{Start: 6, Stop: 8, Text: "b"},
		{Start: 0, Stop: 0, Text: "first"},
		{Start: 0, Stop: 0, Text: "second"},
		{Start: 2, Stop: 4},
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, []edit.Edit{
		{Start: 0, Stop: 0, Text: "first"},
		{Start: 0, Stop: 0, Text: "second"},
		{Start: 2, Stop: 4},
		{Start: 6, Stop: 8, Text: "b"},
	}, prepared)

	_, err = edit.Prepare([]edit.Edit{{Start: 0, Stop: 5}, {Start: 3, Stop: 7}}, 10)
	var conflict *edit.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, edit.Edit{Start: 0, Stop: 5}, conflict.First)
	assert.Equal(t, edit.Edit{Start: 3, Stop: 7}, conflict.Second)

	prepared, err = edit.Prepare(nil, 10)
	require.NoError(t, err)
	assert.Empty(t, prepared)
}

func TestPrepareLenient(t *testing.T) {
	t.Parallel()

	accepted, skipped, merged, err := edit.PrepareLenient([]edit.Edit{
		{Start: 0, Stop: 4},
		{Start: 2, Stop: 6},
		{Start: 5, Stop: 8, Text: "x"},
		{Start: 9, Stop: 10, Text: "y"},
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, []edit.Edit{{Start: 0, Stop: 6}, {Start: 9, Stop: 10, Text: "y"}}, accepted)
	assert.Equal(t, []edit.Edit{{Start: 5, Stop: 8, Text: "x"}}, skipped)
	assert.Equal(t, 1, merged)

	_, _, _, err = edit.PrepareLenient([]edit.Edit{{Start: 0, Stop: 20}}, 10)
	require.Error(t, err)
}
