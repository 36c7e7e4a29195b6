package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/nao1215/sitescan/internal/config"
)

//go:embed templates/sitescan.yaml
var configTemplateText string

var configTemplate = template.Must(template.New("sitescan.yaml").Parse(configTemplateText))

// templateData fills the placeholders of the configuration template.
type templateData struct {
	Driver string
}

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .sitescan configuration file",
		Long: `Init writes a commented .sitescan file with every setting at its default.

sitescan reads .sitescan from the current directory, then from the home
directory. Edit the generated file to point at your database and list.

Examples:
  # Write .sitescan for a MySQL server
  sitescan init

  # Write a SQLite configuration somewhere else
  sitescan init --driver sqlite -o configs/local.yaml

  # Replace an existing file
  sitescan init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile, "Where to write the configuration")
	cmd.Flags().BoolP("force", "f", false, "Replace the file if it exists")
	cmd.Flags().String("driver", config.DefaultDriver, "Database driver written to the file: mysql or sqlite")

	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	driver, err := cmd.Flags().GetString("driver")
	if err != nil {
		return err
	}
	if driver != config.DriverMySQL && driver != config.DriverSQLite {
		return fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, driver)
	}

	content, err := renderConfig(templateData{Driver: driver})
	if err != nil {
		return err
	}

	if err := writeConfig(outputPath, content, force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Run \"sitescan scan -c %s\" or keep it as .sitescan to pick it up automatically.\n", outputPath)
	return nil
}

// renderConfig executes the configuration template.
func renderConfig(data templateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render config template: %w", err)
	}
	return buf.Bytes(), nil
}

// writeConfig writes content to path, creating parent directories.
// An existing file is only replaced when force is set.
func writeConfig(path string, content []byte, force bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0600)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
	}
	if err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return f.Close()
}
