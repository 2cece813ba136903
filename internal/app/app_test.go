package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateConfig_EmbeddedCatalog(t *testing.T) {
	a := New(zap.NewNop())

	err := a.ValidateConfig(context.Background(), ValidateConfig{})
	assert.NoError(t, err)
}

func TestValidateConfig_BadCatalog(t *testing.T) {
	a := New(zap.NewNop())

	path := writeConfigFile(t, "tools:\n  - title: No ID\n")
	err := a.ValidateConfig(context.Background(), ValidateConfig{CatalogPath: path})
	assert.Error(t, err)
}

func TestExport_EmbeddedCatalog(t *testing.T) {
	a := New(zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, a.Export(context.Background(), "", &buf))
	out := buf.String()
	assert.Contains(t, out, "Aadhaar Services")
	assert.Contains(t, out, "category: Government")
}
