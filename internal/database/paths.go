package database

import "github.com/madhankd/madhanboard-v2/internal/docstore"

// Collection names of the persisted layout:
//
//	boards/{boardId}
//	boards/{boardId}/boardLists/{listId}
//	boards/{boardId}/boardLists/{listId}/items/{itemId}
const (
	boardsCollection = "boards"
	listsCollection  = "boardLists"
	itemsCollection  = "items"
)

// Document field names
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldTitle       = "title"
	fieldCreatedAt   = "created_at"
	fieldUpdatedAt   = "updated_at"
	fieldOrder       = "order"
)

func boardsPath() docstore.Path {
	return docstore.Collection(boardsCollection)
}

func boardPath(boardID string) docstore.Path {
	return boardsPath().Doc(boardID)
}

func listsPath(boardID string) docstore.Path {
	return boardPath(boardID).Collection(listsCollection)
}

func listPath(boardID, listID string) docstore.Path {
	return listsPath(boardID).Doc(listID)
}

func itemsPath(boardID, listID string) docstore.Path {
	return listPath(boardID, listID).Collection(itemsCollection)
}

func itemPath(boardID, listID, itemID string) docstore.Path {
	return itemsPath(boardID, listID).Doc(itemID)
}
