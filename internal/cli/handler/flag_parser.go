// Package handler provides flag parsing utilities
package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd       *cobra.Command
	formatter *cli.OutputFormatter
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command, formatter *cli.OutputFormatter) *FlagParser {
	return &FlagParser{
		cmd:       cmd,
		formatter: formatter,
	}
}

// ParseBoardID extracts the board ID from --board or MADBOARD_BOARD.
// A missing board is reported and returned as a usage error.
func (p *FlagParser) ParseBoardID() (string, error) {
	boardID, err := cli.GetBoardID(p.cmd)
	if err != nil {
		return "", p.usage(err, "Set a board with: eval $(madboard use board <board-id>)")
	}
	return boardID, nil
}

// ParseID extracts a required ID flag
func (p *FlagParser) ParseID(flagName string) (string, error) {
	return p.ParseString(flagName)
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", p.usage(fmt.Errorf("failed to parse %s flag: %w", flagName, err), "")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", p.usage(fmt.Errorf("--%s is required", flagName), "")
	}
	return value, nil
}

// ParseStringOptional extracts an optional string flag
func (p *FlagParser) ParseStringOptional(flagName string) (string, error) {
	return p.cmd.Flags().GetString(flagName)
}

// ParseInt extracts an int flag
func (p *FlagParser) ParseInt(flagName string) (int, error) {
	value, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, p.usage(fmt.Errorf("failed to parse %s flag: %w", flagName, err), "")
	}
	return value, nil
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	return p.cmd.Flags().GetBool(flagName)
}

// ParseDescription extracts a description flag, reading stdin for "-"
func (p *FlagParser) ParseDescription(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", p.usage(fmt.Errorf("failed to parse %s flag: %w", flagName, err), "")
	}
	description, err := cli.ReadDescription(value, p.cmd.InOrStdin())
	if err != nil {
		return "", p.formatter.Fail(err)
	}
	return description, nil
}

// usage reports err as a usage error and returns it with ExitUsage
func (p *FlagParser) usage(err error, suggestion string) error {
	if fmtErr := p.formatter.ErrorWithSuggestion("USAGE_ERROR", err.Error(), suggestion); fmtErr != nil {
		return fmtErr
	}
	return cli.WithExitCode(cli.ExitUsage, err)
}
