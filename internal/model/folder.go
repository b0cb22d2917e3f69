package model

// AllFolderID is the reserved sentinel folder representing the unfiltered
// view. It always exists, cannot be renamed and cannot be deleted.
const AllFolderID = "all"

// Folder represents a named grouping node for prompts.
type Folder struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"` // nil = root level
	Order    int     `json:"order"`    // display sequence among siblings
}

// NewFolderParams holds parameters for creating a new Folder.
type NewFolderParams struct {
	Name     string
	ParentID *string
	Order    int
}

// NewFolder creates a Folder with a generated UUID.
func NewFolder(params NewFolderParams) Folder {
	name := params.Name
	if name == "" {
		name = "New folder"
	}

	return Folder{
		ID:       NewID(),
		Name:     name,
		ParentID: params.ParentID,
		Order:    params.Order,
	}
}

// FolderNode is a folder annotated with its children, as produced by the
// folder tree builder. Siblings are sorted by Order.
type FolderNode struct {
	Folder
	Children []FolderNode `json:"children"`
}
