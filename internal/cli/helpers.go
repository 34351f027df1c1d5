package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/models"
)

// EnvBoard holds the board used when --board is not given
const EnvBoard = "MADBOARD_BOARD"

// AddBoardFlag registers the --board flag
func AddBoardFlag(cmd *cobra.Command) {
	cmd.Flags().String("board", "", "Board ID (uses "+EnvBoard+" env var if not specified)")
}

// GetBoardID returns the --board flag, falling back to MADBOARD_BOARD
func GetBoardID(cmd *cobra.Command) (string, error) {
	boardID, _ := cmd.Flags().GetString("board")
	boardID = strings.TrimSpace(boardID)
	if boardID == "" {
		boardID = strings.TrimSpace(os.Getenv(EnvBoard))
	}
	if boardID == "" {
		return "", ErrNoBoard
	}
	return boardID, nil
}

// ReadDescription returns value, or all of stdin when value is "-"
func ReadDescription(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", WithExitCode(ExitDataErr, fmt.Errorf("failed to read description from stdin: %w", err))
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// ParseListOrders parses the --order value. Accepted forms are a JSON array of
// {"id","order"} objects, or comma-separated id=order pairs.
func ParseListOrders(raw string) ([]models.ListOrder, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, WithExitCode(ExitDataErr, fmt.Errorf("empty order list"))
	}

	if strings.HasPrefix(raw, "[") {
		var orders []models.ListOrder
		if err := json.Unmarshal([]byte(raw), &orders); err != nil {
			return nil, WithExitCode(ExitDataErr, fmt.Errorf("invalid reorder JSON: %w", err))
		}
		return orders, nil
	}

	pairs := strings.Split(raw, ",")
	orders := make([]models.ListOrder, 0, len(pairs))
	for _, pair := range pairs {
		id, rawOrder, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, WithExitCode(ExitDataErr, fmt.Errorf("invalid reorder pair %q (want id=order)", pair))
		}
		order, err := strconv.Atoi(strings.TrimSpace(rawOrder))
		if err != nil {
			return nil, WithExitCode(ExitDataErr, fmt.Errorf("invalid order in %q: %w", pair, err))
		}
		orders = append(orders, models.ListOrder{ID: strings.TrimSpace(id), Order: order})
	}
	return orders, nil
}
