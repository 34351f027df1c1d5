package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcli "github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/testutil/cli"
)

func TestBoardCmd_Subcommands(t *testing.T) {
	t.Parallel()
	cmd := BoardCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"list", "create", "delete", "show"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestCreateBoard_Integration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		flags        []string
		verifyOutput func(t *testing.T, output string)
	}{
		{
			name:  "human readable",
			flags: []string{"--name", "Sprint 1"},
			verifyOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Board 'Sprint 1' created successfully")
				assert.Contains(t, output, "To-Do (1 item)")
				assert.Contains(t, output, "Pending (1 item)")
			},
		},
		{
			name:  "json",
			flags: []string{"--name", "Sprint 1", "--description", "desc", "--json"},
			verifyOutput: func(t *testing.T, output string) {
				result := cli.ParseJSON(t, output)
				assert.Equal(t, true, result["success"])
				board := result["board"].(map[string]any)
				assert.Equal(t, "Sprint 1", board["name"])
				assert.Equal(t, "desc", board["description"])
				assert.Len(t, board["boardList"], 3)
			},
		},
		{
			name:  "quiet prints id",
			flags: []string{"--name", "Quiet", "--quiet"},
			verifyOutput: func(t *testing.T, output string) {
				id := strings.TrimSpace(output)
				assert.NotEmpty(t, id)
				assert.NotContains(t, id, "\n")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, app := cli.SetupCLITest(t)

			output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), tt.flags)
			require.NoError(t, err)
			tt.verifyOutput(t, output)

			boards, err := app.BoardService.ListBoards(t.Context())
			require.NoError(t, err)
			assert.Len(t, boards, 1)
		})
	}
}

func TestCreateBoard_DescriptionFromStdin(t *testing.T) {
	t.Parallel()
	_, app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommandWithInput(t, app, CreateCmd(),
		[]string{"--name", "Piped", "--description", "-", "--json"}, "from stdin\n")
	require.NoError(t, err)

	board := cli.ParseJSON(t, output)["board"].(map[string]any)
	assert.Equal(t, "from stdin", board["description"])
}

func TestCreateBoard_Validation(t *testing.T) {
	t.Parallel()
	_, app := cli.SetupCLITest(t)

	t.Run("missing name flag", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--quiet"})
		assert.Error(t, err)
	})

	t.Run("blank name", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--name", "   ", "--json"})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitValidation, appcli.ExitCode(err))

		result := cli.ParseJSON(t, output)
		assert.Equal(t, false, result["success"])
		assert.Equal(t, "VALIDATION_ERROR", result["error"].(map[string]any)["code"])
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--name", strings.Repeat("x", 101), "--quiet"})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitValidation, appcli.ExitCode(err))
	})
}

func TestListBoards_Integration(t *testing.T) {
	t.Parallel()
	_, app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No boards found")

	first := cli.CreateTestBoard(t, app, "First")
	second := cli.CreateTestBoard(t, app, "Second")

	t.Run("quiet lists newest first", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
		require.NoError(t, err)
		ids := strings.Fields(output)
		require.Len(t, ids, 2)
		assert.Equal(t, []string{second, first}, ids)
	})

	t.Run("json", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
		require.NoError(t, err)
		boards := cli.ParseJSON(t, output)["boards"].([]any)
		assert.Len(t, boards, 2)
	})

	t.Run("human readable", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "Found 2 boards")
		assert.Contains(t, output, "First")
		assert.Contains(t, output, "Second")
	})
}

func TestDeleteBoard_Integration(t *testing.T) {
	t.Parallel()

	t.Run("force deletes board and children", func(t *testing.T) {
		t.Parallel()
		repo, app := cli.SetupCLITest(t)
		boardID := cli.CreateTestBoard(t, app, "Doomed")

		output, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", boardID, "--force"})
		require.NoError(t, err)
		assert.Contains(t, output, "deleted successfully")

		lists, err := repo.ListLists(t.Context(), boardID)
		require.NoError(t, err)
		assert.Empty(t, lists)
	})

	t.Run("confirmation declined keeps board", func(t *testing.T) {
		t.Parallel()
		_, app := cli.SetupCLITest(t)
		boardID := cli.CreateTestBoard(t, app, "Kept")

		output, err := cli.ExecuteCLICommandWithInput(t, app, DeleteCmd(), []string{"--id", boardID}, "n\n")
		require.NoError(t, err)
		assert.Contains(t, output, "Delete board 'Kept' with 3 lists and 3 items?")
		assert.Contains(t, output, "Cancelled")

		board, err := app.BoardService.GetBoard(t.Context(), boardID)
		require.NoError(t, err)
		assert.NotNil(t, board)
	})

	t.Run("confirmation accepted", func(t *testing.T) {
		t.Parallel()
		_, app := cli.SetupCLITest(t)
		boardID := cli.CreateTestBoard(t, app, "Gone")

		_, err := cli.ExecuteCLICommandWithInput(t, app, DeleteCmd(), []string{"--id", boardID}, "yes\n")
		require.NoError(t, err)

		board, err := app.BoardService.GetBoard(t.Context(), boardID)
		require.NoError(t, err)
		assert.Nil(t, board)
	})

	t.Run("json result", func(t *testing.T) {
		t.Parallel()
		_, app := cli.SetupCLITest(t)
		boardID := cli.CreateTestBoard(t, app, "Json")

		output, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", boardID, "--json"})
		require.NoError(t, err)
		assert.Equal(t, boardID, cli.ParseJSON(t, output)["board_id"])
	})

	t.Run("unknown board", func(t *testing.T) {
		t.Parallel()
		_, app := cli.SetupCLITest(t)

		_, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", "missing", "--force"})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitNotFound, appcli.ExitCode(err))
	})
}

func TestShowBoard_Integration(t *testing.T) {
	t.Parallel()

	t.Run("json tree", func(t *testing.T) {
		t.Parallel()
		_, app := cli.SetupCLITest(t)
		boardID := cli.CreateTestBoard(t, app, "Shown")

		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--board", boardID, "--json"})
		require.NoError(t, err)

		board := cli.ParseJSON(t, output)["board"].(map[string]any)
		assert.Equal(t, "Shown", board["name"])
		lists := board["boardList"].([]any)
		require.Len(t, lists, 3)
		titles := make([]string, len(lists))
		for i, l := range lists {
			titles[i] = l.(map[string]any)["title"].(string)
		}
		assert.Equal(t, []string{"To-Do", "Done", "Pending"}, titles)
	})

	t.Run("human readable", func(t *testing.T) {
		t.Parallel()
		_, app := cli.SetupCLITest(t)
		boardID := cli.CreateTestBoard(t, app, "Shown")

		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--board", boardID})
		require.NoError(t, err)
		assert.Contains(t, output, "Shown")
		assert.Contains(t, output, "To-Do")
	})

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()
		_, app := cli.SetupCLITest(t)
		boardID := cli.CreateTestBoard(t, app, "Notes")

		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--board", boardID, "--markdown"})
		require.NoError(t, err)
		assert.Contains(t, output, "Notes")
		assert.Contains(t, output, "Pending")
	})

	t.Run("quiet prints list ids", func(t *testing.T) {
		t.Parallel()
		repo, app := cli.SetupCLITest(t)
		boardID := cli.CreateTestBoard(t, app, "Quiet")

		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--board", boardID, "--quiet"})
		require.NoError(t, err)

		lists, err := repo.ListLists(t.Context(), boardID)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(output), len(lists))
	})

	t.Run("unknown board is not found", func(t *testing.T) {
		t.Parallel()
		_, app := cli.SetupCLITest(t)

		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--board", "missing", "--json"})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitNotFound, appcli.ExitCode(err))
		assert.Equal(t, "BOARD_NOT_FOUND", cli.ParseJSON(t, output)["error"].(map[string]any)["code"])
	})

	t.Run("cached after fetch", func(t *testing.T) {
		t.Parallel()
		_, app := cli.SetupCLITest(t)
		boardID := cli.CreateTestBoard(t, app, "Cached")

		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--board", boardID, "--quiet"})
		require.NoError(t, err)

		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--cached", "--json"})
		require.NoError(t, err)
		board := cli.ParseJSON(t, output)["board"].(map[string]any)
		assert.Equal(t, boardID, board["id"])
	})

	t.Run("cached with empty mirror", func(t *testing.T) {
		t.Parallel()
		_, app := cli.SetupCLITest(t)

		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--cached", "--quiet"})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitNotFound, appcli.ExitCode(err))
	})
}

func TestShowBoard_NoBoard(t *testing.T) {
	t.Setenv(appcli.EnvBoard, "")
	_, app := cli.SetupCLITest(t)

	_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--quiet"})
	require.Error(t, err)
	assert.Equal(t, appcli.ExitUsage, appcli.ExitCode(err))
}
