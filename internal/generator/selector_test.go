package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectModel(t *testing.T) {
	tool := &ToolDefinition{
		Slug:            "fantasy-names",
		DefaultModel:    "m1",
		AvailableModels: []string{"m1", "m2"},
	}
	active := map[string]bool{"m1": true}

	tests := []struct {
		name      string
		tool      *ToolDefinition
		active    map[string]bool
		requested string
		want      string
		wantErr   error
	}{
		{name: "default when nothing requested", tool: tool, active: active, want: "m1"},
		{name: "requested and allowed", tool: tool, active: map[string]bool{"m1": true, "m2": true}, requested: "m2", want: "m2"},
		{name: "requested outside allow-list", tool: tool, active: active, requested: "m3", wantErr: ErrModelNotAllowed},
		{name: "requested but inactive", tool: tool, active: active, requested: "m2", wantErr: ErrModelInactive},
		{name: "not allowed wins over inactive", tool: tool, active: map[string]bool{}, requested: "m3", wantErr: ErrModelNotAllowed},
		{name: "default inactive", tool: tool, active: map[string]bool{"m2": true}, wantErr: ErrNoModelAvailable},
		{
			name:    "no default configured",
			tool:    &ToolDefinition{AvailableModels: []string{"m1"}},
			active:  active,
			wantErr: ErrNoModelAvailable,
		},
		{
			name:    "default with empty allow-list",
			tool:    &ToolDefinition{DefaultModel: "m1"},
			active:  active,
			wantErr: ErrInvalidSchema,
		},
		{
			name:    "default outside allow-list",
			tool:    &ToolDefinition{DefaultModel: "m9", AvailableModels: []string{"m1"}},
			active:  active,
			wantErr: ErrInvalidSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectModel(tt.tool, tt.active, tt.requested)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantErr.Error(), Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActiveSet(t *testing.T) {
	set := ActiveSet([]AIModel{
		{Identifier: "m1", Active: true},
		{Identifier: "m2", Active: false},
	})
	assert.Equal(t, map[string]bool{"m1": true}, set)
}

func TestValidateTool(t *testing.T) {
	ok := &ToolDefinition{
		Slug:            "ok",
		DefaultModel:    "m1",
		AvailableModels: []string{"m1"},
		Fields:          []FieldSchema{{Name: "topic", Type: FieldText}},
	}
	assert.NoError(t, ValidateTool(ok))

	dup := &ToolDefinition{Fields: []FieldSchema{{Name: "a", Type: FieldText}, {Name: "a", Type: FieldNumber}}}
	assert.ErrorIs(t, ValidateTool(dup), ErrInvalidSchema)

	badField := &ToolDefinition{Fields: []FieldSchema{{Name: "a", Type: FieldText, Max: ptr(3)}}}
	assert.ErrorIs(t, ValidateTool(badField), ErrInvalidSchema)

	badDefault := &ToolDefinition{Fields: []FieldSchema{{Name: "count", Type: FieldNumber, Max: ptr(5), Default: 50.0}}}
	assert.ErrorIs(t, ValidateTool(badDefault), ErrInvalidSchema)

	badParams := &ToolDefinition{
		DefaultModel:      "m1",
		AvailableModels:   []string{"m1"},
		Fields:            []FieldSchema{{Name: "style", Type: FieldSelect, Options: []string{"epic"}}},
		DefaultParameters: map[string]any{"style": "cute"},
	}
	err := ValidateTool(badParams)
	assert.ErrorIs(t, err, ErrInvalidSchema)
	var pve *ParameterValidationError
	require.ErrorAs(t, err, &pve)
	assert.Contains(t, pve.FieldErrors(), "style")
}

func TestValidateTool_ValidatedToolMergesIdempotently(t *testing.T) {
	tool := &ToolDefinition{
		DefaultModel:    "m1",
		AvailableModels: []string{"m1"},
		Fields: []FieldSchema{
			{Name: "count", Type: FieldNumber, Max: ptr(5), Default: 5},
			{Name: "rhyme", Type: FieldSwitch, Default: "true"},
		},
	}
	require.NoError(t, ValidateTool(tool))

	first, err := MergeParameters(tool.Fields, tool.DefaultParameters, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": 5.0, "rhyme": true}, first)

	second, err := MergeParameters(tool.Fields, first, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
