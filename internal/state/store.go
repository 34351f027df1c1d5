// Package state holds the board index and the currently open board for
// the CLI and HTTP collaborators, and keeps the local mirror up to date.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/madhankd/madhanboard-v2/internal/events"
	"github.com/madhankd/madhanboard-v2/internal/models"
	"github.com/madhankd/madhanboard-v2/internal/services/board"
	"github.com/madhankd/madhanboard-v2/internal/services/item"
	"github.com/madhankd/madhanboard-v2/internal/services/list"
)

// subscriberBuffer is how many snapshots a slow subscriber may lag behind
// before further snapshots are dropped for it
const subscriberBuffer = 8

// BoardsState is the board index slice of the state
type BoardsState struct {
	Loading bool
	Data    []*models.BoardSummary
	Err     error // Last load failure; Data keeps the previous value
}

// CurrentBoardState is the open board slice of the state
type CurrentBoardState struct {
	Loading bool
	Data    *models.Board
}

// Snapshot is an immutable copy of the whole state
type Snapshot struct {
	Boards  BoardsState
	Current CurrentBoardState
}

// SnapshotMirror persists the current board locally
type SnapshotMirror interface {
	Save(ctx context.Context, board *models.Board) error
	Load(ctx context.Context) (*models.Board, bool, error)
	Clear(ctx context.Context) error
}

// Store owns the state and funnels every mutation through the services.
// It is safe for concurrent use.
type Store struct {
	boardService board.Service
	listService  list.Service
	itemService  item.Service
	mirror       SnapshotMirror

	mu      sync.RWMutex
	boards  BoardsState
	current CurrentBoardState
	subs    map[chan Snapshot]struct{}
}

// New creates a store. Both slices start in the loading state until first
// populated. mirror may be nil to disable local snapshots.
func New(boards board.Service, lists list.Service, items item.Service, mirror SnapshotMirror) *Store {
	return &Store{
		boardService: boards,
		listService:  lists,
		itemService:  items,
		mirror:       mirror,
		boards:       BoardsState{Loading: true, Data: []*models.BoardSummary{}},
		current:      CurrentBoardState{Loading: true},
		subs:         make(map[chan Snapshot]struct{}),
	}
}

// ============================================================================
// OBSERVATION
// ============================================================================

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	summaries := make([]*models.BoardSummary, len(s.boards.Data))
	for i, b := range s.boards.Data {
		copied := *b
		summaries[i] = &copied
	}
	return Snapshot{
		Boards: BoardsState{
			Loading: s.boards.Loading,
			Data:    summaries,
			Err:     s.boards.Err,
		},
		Current: CurrentBoardState{
			Loading: s.current.Loading,
			Data:    s.current.Data.Clone(),
		},
	}
}

// Subscribe returns a channel receiving a snapshot after every state change,
// and a function that ends the subscription and closes the channel.
// Snapshots are dropped for subscribers that fall behind.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, subscriberBuffer)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// update applies fn under the lock and notifies subscribers
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
			slog.Debug("dropping state snapshot for slow subscriber")
		}
	}
	s.mu.Unlock()
}

// currentBoardID returns the ID of the open board, or ""
func (s *Store) currentBoardID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current.Data == nil {
		return ""
	}
	return s.current.Data.ID
}

// ============================================================================
// BOARD INDEX
// ============================================================================

// LoadBoards refreshes the board index. On failure the previous index is
// kept, the error is recorded on the state and returned.
func (s *Store) LoadBoards(ctx context.Context) error {
	s.update(func() { s.boards.Loading = true })

	boards, err := s.boardService.ListBoards(ctx)
	if err != nil {
		slog.Error("failed to fetch boards", "error", err)
	}

	s.update(func() {
		s.boards.Loading = false
		s.boards.Err = err
		if err == nil {
			s.boards.Data = boards
		}
	})
	return err
}

// SetBoardsLoading toggles the loading flag of the board index
func (s *Store) SetBoardsLoading(loading bool) {
	s.update(func() { s.boards.Loading = loading })
}

// CreateBoard creates a seeded board and prepends it to the index
func (s *Store) CreateBoard(ctx context.Context, name, description string) (*models.Board, error) {
	created, err := s.boardService.CreateBoard(ctx, board.CreateBoardRequest{Name: name, Description: description})
	if created != nil && created.ID != "" {
		// Partially seeded boards exist too and belong in the index
		summary := created.Summary()
		s.update(func() {
			s.boards.Data = append([]*models.BoardSummary{summary}, s.boards.Data...)
		})
	}
	if err != nil {
		slog.Error("error creating board", "name", name, "error", err)
		return created, err
	}
	return created, nil
}

// DeleteBoard deletes a board and drops it from the index. If it is the open
// board, the open board and the mirror are cleared.
func (s *Store) DeleteBoard(ctx context.Context, boardID string) error {
	if err := s.boardService.DeleteBoard(ctx, boardID); err != nil {
		slog.Error("error deleting board", "board_id", boardID, "error", err)
		return err
	}

	wasCurrent := false
	s.update(func() {
		kept := s.boards.Data[:0:0]
		for _, b := range s.boards.Data {
			if b.ID != boardID {
				kept = append(kept, b)
			}
		}
		s.boards.Data = kept

		if s.current.Data != nil && s.current.Data.ID == boardID {
			s.current.Data = nil
			wasCurrent = true
		}
	})

	if wasCurrent && s.mirror != nil {
		if err := s.mirror.Clear(ctx); err != nil {
			slog.Warn("failed to clear board mirror", "board_id", boardID, "error", err)
		}
	}
	slog.Info("deleted board", "board_id", boardID)
	return nil
}

// ============================================================================
// CURRENT BOARD
// ============================================================================

// FetchBoard loads a board tree, makes it the open board and mirrors it.
// A missing board returns nil and leaves the open board unchanged.
func (s *Store) FetchBoard(ctx context.Context, boardID string) (*models.Board, error) {
	s.update(func() { s.current.Loading = true })

	loaded, err := s.boardService.GetBoard(ctx, boardID)
	if err != nil {
		slog.Error("failed to fetch board", "board_id", boardID, "error", err)
		s.update(func() { s.current.Loading = false })
		return nil, err
	}

	s.update(func() {
		s.current.Loading = false
		if loaded != nil {
			s.current.Data = loaded
		}
	})
	if loaded == nil {
		return nil, nil
	}

	if s.mirror != nil {
		if err := s.mirror.Save(ctx, loaded); err != nil {
			slog.Warn("failed to mirror board", "board_id", boardID, "error", err)
		}
	}
	return loaded.Clone(), nil
}

// RestoreFromMirror makes the mirrored board the open board.
// Reports whether a snapshot was found.
func (s *Store) RestoreFromMirror(ctx context.Context) (bool, error) {
	return s.restore(ctx, "")
}

// RestoreBoardFromMirror opens the mirrored copy of boardID, not loading, so
// it can be shown while FetchBoard replaces it with the stored tree. A
// snapshot of another board is left alone and reported as not found.
func (s *Store) RestoreBoardFromMirror(ctx context.Context, boardID string) (bool, error) {
	return s.restore(ctx, boardID)
}

// restore opens the mirrored board; a non-empty boardID must match it
func (s *Store) restore(ctx context.Context, boardID string) (bool, error) {
	if s.mirror == nil {
		return false, nil
	}
	snapshot, ok, err := s.mirror.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to restore board: %w", err)
	}
	if !ok || (boardID != "" && snapshot.ID != boardID) {
		return false, nil
	}
	s.update(func() {
		s.current.Data = snapshot
		s.current.Loading = false
	})
	return true, nil
}

// PersistCurrent writes the open board to the mirror
func (s *Store) PersistCurrent(ctx context.Context) error {
	if s.mirror == nil {
		return nil
	}
	s.mu.RLock()
	current := s.current.Data.Clone()
	s.mu.RUnlock()
	if current == nil {
		return nil
	}
	return s.mirror.Save(ctx, current)
}

// refreshIfCurrent reloads the open board after a write to boardID
func (s *Store) refreshIfCurrent(ctx context.Context, boardID string) {
	if s.currentBoardID() != boardID {
		return
	}
	if _, err := s.FetchBoard(ctx, boardID); err != nil {
		slog.Warn("failed to refresh board after write", "board_id", boardID, "error", err)
	}
}

// HandleEvent reacts to a change published by another process
func (s *Store) HandleEvent(ctx context.Context, event events.Event) {
	if event.Type != events.EventBoardChanged {
		return
	}
	s.refreshIfCurrent(ctx, event.BoardID)
	if err := s.LoadBoards(ctx); err != nil {
		slog.Warn("failed to refresh boards after event", "error", err)
	}
}

// ============================================================================
// LIST AND ITEM MUTATIONS
// ============================================================================

// AddList appends a list to a board
func (s *Store) AddList(ctx context.Context, boardID, title string) (*models.BoardList, error) {
	created, err := s.listService.AddList(ctx, list.AddListRequest{BoardID: boardID, Title: title})
	if err != nil {
		return nil, err
	}
	s.refreshIfCurrent(ctx, boardID)
	return created, nil
}

// RenameList renames a list
func (s *Store) RenameList(ctx context.Context, boardID, listID, title string) error {
	if err := s.listService.RenameList(ctx, list.RenameListRequest{BoardID: boardID, ListID: listID, Title: title}); err != nil {
		return err
	}
	s.refreshIfCurrent(ctx, boardID)
	return nil
}

// DeleteList deletes a list and its items
func (s *Store) DeleteList(ctx context.Context, boardID, listID string) error {
	if err := s.listService.DeleteList(ctx, boardID, listID); err != nil {
		return err
	}
	s.refreshIfCurrent(ctx, boardID)
	return nil
}

// ReorderLists applies a full reorder atomically
func (s *Store) ReorderLists(ctx context.Context, boardID string, orders []models.ListOrder) error {
	if err := s.listService.ReorderLists(ctx, boardID, orders); err != nil {
		return err
	}
	s.refreshIfCurrent(ctx, boardID)
	return nil
}

// MoveList moves one list to a position
func (s *Store) MoveList(ctx context.Context, boardID, listID string, position int) error {
	if err := s.listService.MoveList(ctx, list.MoveListRequest{BoardID: boardID, ListID: listID, Position: position}); err != nil {
		return err
	}
	s.refreshIfCurrent(ctx, boardID)
	return nil
}

// AddItem adds an item to a list
func (s *Store) AddItem(ctx context.Context, boardID, listID, title, description string) (*models.ListItem, error) {
	created, err := s.itemService.AddItem(ctx, item.AddItemRequest{
		BoardID:     boardID,
		ListID:      listID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, err
	}
	s.refreshIfCurrent(ctx, boardID)
	return created, nil
}

// RenameItem renames an item
func (s *Store) RenameItem(ctx context.Context, boardID, listID, itemID, title string) error {
	if err := s.itemService.RenameItem(ctx, item.RenameItemRequest{
		BoardID: boardID,
		ListID:  listID,
		ItemID:  itemID,
		Title:   title,
	}); err != nil {
		return err
	}
	s.refreshIfCurrent(ctx, boardID)
	return nil
}

// DeleteItem deletes an item
func (s *Store) DeleteItem(ctx context.Context, boardID, listID, itemID string) error {
	if err := s.itemService.DeleteItem(ctx, boardID, listID, itemID); err != nil {
		return err
	}
	s.refreshIfCurrent(ctx, boardID)
	return nil
}
