package app

import (
	"context"

	"github.com/oshokin/oneshot/internal/config"
	"github.com/oshokin/oneshot/internal/logger"
)

// ExecuteConfigInitCommand writes the default configuration file.
func ExecuteConfigInitCommand(ctx context.Context, filename string, force bool) error {
	savedFilename, err := config.SaveDefaultConfig(filename, force)
	if err != nil {
		return err
	}

	logger.Infof(ctx, "Default configuration written to '%s'", savedFilename)

	return nil
}
