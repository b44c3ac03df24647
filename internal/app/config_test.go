package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/oneshot/internal/config"
	"github.com/oshokin/oneshot/internal/utils"
)

func TestExecuteConfigInitCommand(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), "oneshot.yaml")

	err := ExecuteConfigInitCommand(context.Background(), filename, false)
	require.NoError(t, err)

	isFileExist, err := utils.IsFileExist(filename)
	require.NoError(t, err)
	assert.True(t, isFileExist)

	err = ExecuteConfigInitCommand(context.Background(), filename, false)
	require.ErrorIs(t, err, config.ErrConfigExists)

	err = ExecuteConfigInitCommand(context.Background(), filename, true)
	require.NoError(t, err)
}
