package cli

import (
	"context"
	"fmt"

	"github.com/LemonBreezes/emacs-fish-completion/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	ConfigPath string
	Overrides  Overrides
}

// Status displays the effective configuration and backend availability
func Status(ctx context.Context, params StatusParams) error {
	cfg, configPath, err := loadConfig(params.ConfigPath, params.Overrides)
	if err != nil {
		return err
	}

	data, err := status.CollectAll(ctx, cfg, configPath, nil)
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	fmt.Println(status.Render(data))
	return nil
}
