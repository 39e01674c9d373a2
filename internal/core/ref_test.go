package core_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/MoJuiceX/clawcombat-sub000/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRef(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		module  string
		idType  string
		wantErr bool
	}{
		{
			name:    "valid identifier",
			value:   "fire_blast",
			module:  "catalog",
			idType:  "move",
			wantErr: false,
		},
		{
			name:    "empty value",
			value:   "",
			module:  "catalog",
			idType:  "move",
			wantErr: true,
		},
		{
			name:    "empty module",
			value:   "fire_blast",
			module:  "",
			idType:  "move",
			wantErr: true,
		},
		{
			name:    "empty type",
			value:   "fire_blast",
			module:  "catalog",
			idType:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := core.NewRef(core.RefInput{
				Module: tt.module,
				Type:   tt.idType,
				Value:  tt.value,
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, id.Value)
			assert.Equal(t, tt.module, id.Module)
			assert.Equal(t, tt.idType, id.Type)
		})
	}
}

func TestRef_String(t *testing.T) {
	id := core.MustNewRef(core.RefInput{Module: "catalog", Type: "move", Value: "fire_blast"})
	assert.Equal(t, "catalog:move:fire_blast", id.String())
}

func TestRef_Equals(t *testing.T) {
	id1 := core.MustNewRef(core.RefInput{Module: "catalog", Type: "move", Value: "fire_blast"})
	id2 := core.MustNewRef(core.RefInput{Module: "catalog", Type: "move", Value: "fire_blast"})
	id3 := core.MustNewRef(core.RefInput{Module: "catalog", Type: "ability", Value: "fire_blast"})
	id4 := core.MustNewRef(core.RefInput{Module: "catalog", Type: "move", Value: "flamethrower"})

	assert.True(t, id1.Equals(id2), "identical refs should be equal")
	assert.False(t, id1.Equals(id3), "different types should not be equal")
	assert.False(t, id1.Equals(id4), "different values should not be equal")

	var nilRef *core.Ref
	var nilRef2 *core.Ref
	assert.False(t, id1.Equals(nilRef), "non-nil should not equal nil")
	assert.True(t, nilRef.Equals(nilRef2), "nil should equal nil")
}

func TestRef_JSONMarshaling(t *testing.T) {
	original := core.MustNewRef(core.RefInput{Module: "catalog", Type: "nature", Value: "hardy"})

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"catalog:nature:hardy"`, string(data))

	var unmarshaled core.Ref
	err = json.Unmarshal(data, &unmarshaled)
	require.NoError(t, err)
	assert.True(t, original.Equals(&unmarshaled))
}

func TestRef_JSONUnmarshal_BackwardCompatibility(t *testing.T) {
	objectFormat := `{"module":"catalog","type":"ability","value":"blaze"}`

	var id core.Ref
	err := json.Unmarshal([]byte(objectFormat), &id)
	require.NoError(t, err)

	assert.Equal(t, "blaze", id.Value)
	assert.Equal(t, "catalog", id.Module)
	assert.Equal(t, "ability", id.Type)
}

func TestMustNewRef_Panics(t *testing.T) {
	assert.Panics(t, func() {
		core.MustNewRef(core.RefInput{Module: "catalog", Type: "move", Value: ""})
	}, "MustNewRef should panic with invalid input")
}

func TestParseString(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		want         *core.Ref
		wantErr      error
		wantErrMsg   string
		checkErrType bool
	}{
		{
			name:  "valid identifier",
			input: "catalog:move:surf",
			want:  core.MustNewRef(core.RefInput{Module: "catalog", Type: "move", Value: "surf"}),
		},
		{
			name:  "valid with underscores",
			input: "catalog:move:hydro_pump",
			want:  core.MustNewRef(core.RefInput{Module: "catalog", Type: "move", Value: "hydro_pump"}),
		},
		{
			name:  "valid with dashes",
			input: "third-party:move:custom-strike",
			want:  core.MustNewRef(core.RefInput{Module: "third-party", Type: "move", Value: "custom-strike"}),
		},
		{
			name:         "empty string",
			input:        "",
			wantErr:      core.ErrEmptyString,
			checkErrType: true,
		},
		{
			name:         "missing parts",
			input:        "catalog:move",
			wantErr:      core.ErrTooFewSegments,
			wantErrMsg:   "expected 3 segments, got 2",
			checkErrType: true,
		},
		{
			name:         "too many parts",
			input:        "catalog:move:surf:extra",
			wantErr:      core.ErrTooManySegments,
			wantErrMsg:   "expected 3 segments, got 4",
			checkErrType: true,
		},
		{
			name:         "empty module",
			input:        ":move:surf",
			wantErr:      core.ErrEmptyComponent,
			wantErrMsg:   "module",
			checkErrType: true,
		},
		{
			name:         "empty type",
			input:        "catalog::surf",
			wantErr:      core.ErrEmptyComponent,
			wantErrMsg:   "type",
			checkErrType: true,
		},
		{
			name:         "empty value",
			input:        "catalog:move:",
			wantErr:      core.ErrEmptyComponent,
			wantErrMsg:   "value",
			checkErrType: true,
		},
		{
			name:         "invalid characters - spaces",
			input:        "catalog:move:water gun",
			wantErr:      core.ErrInvalidCharacters,
			wantErrMsg:   "invalid characters",
			checkErrType: true,
		},
		{
			name:         "invalid characters - special chars",
			input:        "catalog:move:surf!",
			wantErr:      core.ErrInvalidCharacters,
			wantErrMsg:   "invalid characters",
			checkErrType: true,
		},
		{
			name:         "invalid characters - dots",
			input:        "catalog:move:surf.special",
			wantErr:      core.ErrInvalidCharacters,
			wantErrMsg:   "invalid characters",
			checkErrType: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.ParseString(tt.input)

			if tt.wantErr != nil {
				assert.Error(t, err)

				if tt.checkErrType {
					assert.ErrorIs(t, err, tt.wantErr, "should match expected error type")
				}

				if tt.wantErrMsg != "" {
					assert.Contains(t, err.Error(), tt.wantErrMsg)
				}

				if core.IsParseError(err) {
					var parseErr *core.ParseError
					errors.As(err, &parseErr)
					assert.Equal(t, tt.input, parseErr.Input)
				} else if core.IsValidationError(err) {
					var valErr *core.ValidationError
					errors.As(err, &valErr)
					assert.NotEmpty(t, valErr.Field)
				}

				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.True(t, got.Equals(tt.want), "parsed Ref should equal expected")
			}
		})
	}
}
