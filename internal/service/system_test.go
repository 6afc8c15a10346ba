package service

import (
	"context"
	"testing"

	"github.com/deppfellow/ticketdesk/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySettings map[string]string

func (m memorySettings) Get(_ context.Context, name string) (string, bool, error) {
	v, ok := m[name]
	return v, ok, nil
}

func (m memorySettings) Set(_ context.Context, name, value string) error {
	m[name] = value
	return nil
}

func TestSystemServiceFallsBackToDefault(t *testing.T) {
	logger := zerolog.Nop()

	for _, def := range []bool{true, false} {
		svc := NewSystemService(&logger, memorySettings{}, def)
		mandatory, err := svc.IsLoginMandatory(context.Background())
		require.NoError(t, err)
		assert.Equal(t, def, mandatory)
	}
}

func TestSystemServiceStoredValueWins(t *testing.T) {
	logger := zerolog.Nop()
	settings := memorySettings{}
	svc := NewSystemService(&logger, settings, false)

	require.NoError(t, svc.SetLoginMandatory(context.Background(), true))
	assert.Equal(t, "true", settings[model.SettingMandatoryLogin])

	mandatory, err := svc.IsLoginMandatory(context.Background())
	require.NoError(t, err)
	assert.True(t, mandatory)

	require.NoError(t, svc.SetLoginMandatory(context.Background(), false))
	mandatory, err = svc.IsLoginMandatory(context.Background())
	require.NoError(t, err)
	assert.False(t, mandatory)
}

func TestSystemServiceIgnoresGarbage(t *testing.T) {
	logger := zerolog.Nop()
	svc := NewSystemService(&logger, memorySettings{model.SettingMandatoryLogin: "maybe"}, true)

	mandatory, err := svc.IsLoginMandatory(context.Background())
	require.NoError(t, err)
	assert.True(t, mandatory)
}
