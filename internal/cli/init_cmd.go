package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LemonBreezes/emacs-fish-completion/internal/config"
	"github.com/LemonBreezes/emacs-fish-completion/internal/derrors"
)

// Init writes the default configuration to the user config directory and
// returns the path written. An existing file is kept unless force is set.
func Init(force bool) (string, error) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return "", derrors.NewConfigurationError("", "failed to get config directory", err)
	}
	configPath := filepath.Join(configDir, config.SupportedConfigNames[0])

	if existing := config.FindConfigFile(configDir); existing != "" && !force {
		return "", derrors.NewConfigurationError(existing, "config file already exists (use --force to overwrite)", nil)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", derrors.NewConfigurationError(configPath, "failed to create config directory", err)
	}

	if err := os.WriteFile(configPath, config.DefaultsYAML(), 0644); err != nil {
		return "", derrors.NewConfigurationError(configPath, "failed to create config file", err)
	}

	fmt.Printf("Created config: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Set fallback_enabled: true to ask bash-completion when fish has nothing better")
	fmt.Println("  2. Run 'fishcomp validate' after editing")
	fmt.Println("  3. Run 'fishcomp status' to check which shells were found")

	return configPath, nil
}
