package domain_test

import (
	"testing"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariable_ReadFallsBackToDefault(t *testing.T) {
	v := domain.NewVariable(7)

	assert.False(t, v.IsBound())
	assert.Equal(t, 7, v.Read())

	v.Write(0)
	assert.True(t, v.IsBound())
	assert.Equal(t, 0, v.Read(), "a written zero must win over the default")

	v.SetDefault(42)
	assert.Equal(t, 0, v.Read())

	v.Reset()
	assert.False(t, v.IsBound())
	assert.Equal(t, 42, v.Read())
}

func TestVariable_AssignIsStrict(t *testing.T) {
	f := domain.NewVariable(0.0)

	err := f.Assign(3)
	require.ErrorIs(t, err, domain.ErrTypeMismatch)
	assert.False(t, f.IsBound())

	require.NoError(t, f.Assign(3.5))
	assert.Equal(t, 3.5, f.Value())

	require.ErrorIs(t, f.AssignDefault("x"), domain.ErrTypeMismatch)
	require.NoError(t, f.AssignDefault(1.0))
	assert.Equal(t, 1.0, f.Default())
}

func TestNewCell(t *testing.T) {
	tests := []struct {
		typ  domain.ValueType
		zero any
	}{
		{domain.TypeInt, 0},
		{domain.TypeFloat, 0.0},
		{domain.TypeBool, false},
		{domain.TypeVector2, domain.Vector2{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			c, err := domain.NewCell(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, c.ValueType())
			assert.Equal(t, tt.zero, c.Value())
		})
	}

	_, err := domain.NewCell("string")
	assert.Error(t, err)
}
