// Package cli implements the sectl command line tool, a thin operator
// client for sectiond.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Global flags.
var (
	configFile string
	serverURL  string
	apiToken   string
)

// FileConfig is the sectl config file, by default at
// ~/.config/sectl/config.yaml.
type FileConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	Token     string `yaml:"token,omitempty"`
}

var rootCmd = &cobra.Command{
	Use:   "sectl",
	Short: "Operator CLI for sectiond",
	Long: `sectl talks to a sectiond server: queue page imports, inspect page
layouts, and preview where a new section would be placed.

The parse command works offline on local HTML or Markdown files.

Environment Variables:
  SECTL_SERVER  Server base URL
  SECTL_TOKEN   API token for authentication`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.config/sectl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "sectiond base URL")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "API token")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(layoutCmd)
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sectl", "config.yaml"), nil
}

func loadFileConfig() (*FileConfig, error) {
	path := configFile
	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// resolveClient builds an API client from flags, environment, and the
// config file, in that precedence order.
func resolveClient() (*Client, error) {
	cfg, err := loadFileConfig()
	if err != nil {
		return nil, err
	}

	url := serverURL
	if url == "" {
		url = os.Getenv("SECTL_SERVER")
	}
	if url == "" {
		url = cfg.ServerURL
	}
	if url == "" {
		return nil, fmt.Errorf("no server URL configured (use --server, SECTL_SERVER, or the config file)")
	}

	token := apiToken
	if token == "" {
		token = os.Getenv("SECTL_TOKEN")
	}
	if token == "" {
		token = cfg.Token
	}
	if token == "" {
		return nil, fmt.Errorf("no API token configured (use --token, SECTL_TOKEN, or the config file)")
	}

	return NewClient(url, token), nil
}
