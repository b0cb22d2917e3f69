package model

import "math/rand"

// TagColors is the fixed palette used when a tag is created without an
// explicit color.
var TagColors = []string{
	"#3B82F6", // blue
	"#10B981", // green
	"#8B5CF6", // purple
	"#F97316", // orange
	"#EC4899", // pink
	"#06B6D4", // cyan
	"#EAB308", // yellow
	"#EF4444", // red
}

// Tag represents a named, colored label attachable to many prompts.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewTagParams holds parameters for creating a new Tag.
type NewTagParams struct {
	Name  string
	Color string
}

// NewTag creates a Tag with a generated UUID. When no color is given, one is
// picked uniformly at random from TagColors.
func NewTag(params NewTagParams) Tag {
	color := params.Color
	if color == "" {
		color = TagColors[rand.Intn(len(TagColors))]
	}

	return Tag{
		ID:    NewID(),
		Name:  params.Name,
		Color: color,
	}
}
