package board

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/madhankd/madhanboard-v2/internal/database"
	"github.com/madhankd/madhanboard-v2/internal/models"
)

// treeReader is the subset of the data store the aggregate loader needs
type treeReader interface {
	database.BoardRepository
	database.ListReader
	database.ItemReader
}

// LoadBoard composes a board, its lists and their items into one tree.
// Returns nil without an error if the board does not exist.
//
// Items are fetched concurrently per list; each result is written back to
// the list at the same index, so list order never depends on completion order.
func LoadBoard(ctx context.Context, repo treeReader, boardID string) (*models.Board, error) {
	summary, err := repo.GetBoardSummary(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, nil
	}

	lists, err := repo.ListLists(ctx, boardID)
	if err != nil {
		return nil, err
	}

	items := make([][]*models.ListItem, len(lists))
	g, gctx := errgroup.WithContext(ctx)
	for i, list := range lists {
		g.Go(func() error {
			listItems, err := repo.ListItems(gctx, boardID, list.ID)
			if err != nil {
				return fmt.Errorf("failed to load items of list %s: %w", list.ID, err)
			}
			items[i] = listItems
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, list := range lists {
		list.Items = items[i]
	}

	return &models.Board{
		ID:          summary.ID,
		Name:        summary.Name,
		Description: summary.Description,
		CreatedAt:   summary.CreatedAt,
		BoardList:   lists,
	}, nil
}
