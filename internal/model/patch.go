package model

// Field is an optional patch field. The zero value means "leave unchanged".
type Field[T any] struct {
	set   bool
	value T
}

// Set returns a Field carrying the given value.
func Set[T any](v T) Field[T] {
	return Field[T]{set: true, value: v}
}

// IsSet reports whether the field carries a value.
func (f Field[T]) IsSet() bool {
	return f.set
}

// Value returns the carried value, or the zero value if unset.
func (f Field[T]) Value() T {
	return f.value
}

// FolderPatch is a partial update of a Folder. Unset fields keep their
// current value.
type FolderPatch struct {
	Name     Field[string]
	ParentID Field[*string]
	Order    Field[int]
}

// Apply merges the patch into the folder, field by field.
func (p FolderPatch) Apply(f *Folder) {
	if p.Name.IsSet() {
		f.Name = p.Name.Value()
	}
	if p.ParentID.IsSet() {
		f.ParentID = p.ParentID.Value()
	}
	if p.Order.IsSet() {
		f.Order = p.Order.Value()
	}
}

// TagPatch is a partial update of a Tag.
type TagPatch struct {
	Name  Field[string]
	Color Field[string]
}

// Apply merges the patch into the tag, field by field.
func (p TagPatch) Apply(t *Tag) {
	if p.Name.IsSet() {
		t.Name = p.Name.Value()
	}
	if p.Color.IsSet() {
		t.Color = p.Color.Value()
	}
}

// PromptPatch is a partial update of a Prompt. Version history and
// timestamps are owned by the repository update path and cannot be patched
// directly.
type PromptPatch struct {
	Title    Field[string]
	Content  Field[string]
	FolderID Field[*string]
	Tags     Field[[]string]
}

// Apply merges the patch into the prompt, field by field.
func (p PromptPatch) Apply(pr *Prompt) {
	if p.Title.IsSet() {
		pr.Title = p.Title.Value()
	}
	if p.Content.IsSet() {
		pr.Content = p.Content.Value()
	}
	if p.FolderID.IsSet() {
		pr.FolderID = p.FolderID.Value()
	}
	if p.Tags.IsSet() {
		tags := p.Tags.Value()
		if tags == nil {
			tags = []string{}
		}
		pr.Tags = tags
	}
}
