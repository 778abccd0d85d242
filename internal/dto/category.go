package dto

// CreateCategoryRequest creates a custom category
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Color string `json:"color" validate:"required,hexcolor"`
	Icon  string `json:"icon" validate:"omitempty,max=40"`
}

// UpdateCategoryDefinitionRequest edits a custom category's display fields
type UpdateCategoryDefinitionRequest struct {
	Name  string `json:"name" validate:"omitempty,min=1,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
	Icon  string `json:"icon" validate:"omitempty,max=40"`
}

// RenameCategoryRequest moves every transaction and learned pattern from one
// category to another
type RenameCategoryRequest struct {
	OldCategory string `json:"oldCategory" validate:"required,category_id"`
	NewCategory string `json:"newCategory" validate:"required,category_id"`
}

// CategoryResponse is the wire form of a category
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// SuggestCategoryRequest asks the engine for a category suggestion
type SuggestCategoryRequest struct {
	Description string `json:"description" validate:"required"`
}

// SuggestCategoryResponse carries the engine's suggestion and which tier
// produced it
type SuggestCategoryResponse struct {
	Category string `json:"category"`
	Source   string `json:"source"`
}
