package models

// ============================================================================
// DEFAULT BOARD TEMPLATE
// ============================================================================

// TemplateItem is a sample item seeded into a new board
type TemplateItem struct {
	Title       string
	Description string
}

// TemplateList is a list seeded into a new board, with its sample items
type TemplateList struct {
	Title string
	Items []TemplateItem
}

// DefaultBoardLists is the fixed template every new board is seeded with.
// Index in the slice is the list order.
var DefaultBoardLists = []TemplateList{
	{
		Title: "To-Do",
		Items: []TemplateItem{
			{Title: "Sample To-Do Item", Description: "This is an example of a task you can add to your board."},
		},
	},
	{
		Title: "Done",
		Items: []TemplateItem{
			{Title: "Sample Done Item", Description: "This is an example of a completed task."},
		},
	},
	{
		Title: "Pending",
		Items: []TemplateItem{
			{Title: "Sample Pending Item", Description: "This is an example of a pending task."},
		},
	},
}
