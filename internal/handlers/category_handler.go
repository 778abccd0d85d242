package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryRepo       repositories.CategoryRepositoryInterface
	categorizerService services.CategorizerServiceInterface
	propagationService services.PropagationServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(
	categoryRepo repositories.CategoryRepositoryInterface,
	categorizerService services.CategorizerServiceInterface,
	propagationService services.PropagationServiceInterface,
) *CategoryHandler {
	return &CategoryHandler{
		categoryRepo:       categoryRepo,
		categorizerService: categorizerService,
		propagationService: propagationService,
	}
}

// List returns the built-in, admin-defined and user-defined categories
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.categoryRepo.ListForUser(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, toCategoryResponse(&categories[i]))
	}

	return c.JSON(http.StatusOK, responses)
}

// Create adds a custom category for the user
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	existing, err := h.categoryRepo.ListForUser(userID)
	if err != nil {
		return SendSystemError(c, err)
	}
	for i := range existing {
		if existing[i].Name == req.Name {
			return SendError(c, errors.CategoryAlreadyExists)
		}
	}

	category := models.Category{
		UserID: &userID,
		Name:   req.Name,
		Color:  req.Color,
		Icon:   req.Icon,
	}

	if err := h.categoryRepo.Create(&category); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(&category))
}

// Update edits a custom category's display fields
func (h *CategoryHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID := c.Param("id")

	var req dto.UpdateCategoryDefinitionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryRepo.GetByID(categoryID, userID)
	if err != nil {
		if err == repositories.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	if !category.IsUserDeletable() {
		return SendError(c, errors.CategoryNotDeletable, errors.WithMessage("Built-in categories cannot be modified"))
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Color != "" {
		category.Color = req.Color
	}
	if req.Icon != "" {
		category.Icon = req.Icon
	}

	if err := h.categoryRepo.Update(category); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// Delete removes a custom category
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID := c.Param("id")

	category, err := h.categoryRepo.GetByID(categoryID, userID)
	if err != nil {
		if err == repositories.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	if !category.IsUserDeletable() {
		return SendError(c, errors.CategoryNotDeletable)
	}

	if err := h.categoryRepo.Delete(categoryID, userID); err != nil {
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Rename moves every transaction and learned pattern of the user from one
// category to another
func (h *CategoryHandler) Rename(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.RenameCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	updated, err := h.propagationService.RenameCategory(userID, req.OldCategory, req.NewCategory)
	if err != nil {
		if err == services.ErrRenameIntoOther {
			return SendError(c, errors.CategoryRenameToOther)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.PropagationResponse{Updated: updated})
}

// Suggest asks the categorization engine for a category suggestion
func (h *CategoryHandler) Suggest(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.SuggestCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, source := h.categorizerService.Suggest(userID, req.Description)

	return c.JSON(http.StatusOK, dto.SuggestCategoryResponse{
		Category: category,
		Source:   source,
	})
}

// ReplaceSystemCategories swaps the admin-defined category set. Admin only.
func (h *CategoryHandler) ReplaceSystemCategories(c echo.Context) error {
	if !getIsAdminFromContext(c) {
		return SendError(c, errors.AuthInsufficientPermission)
	}

	var reqs []dto.CreateCategoryRequest
	if err := c.Bind(&reqs); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	categories := make([]models.Category, 0, len(reqs))
	for _, req := range reqs {
		if err := c.Validate(req); err != nil {
			return err
		}
		categories = append(categories, models.Category{
			ID:    models.SystemCategoryPrefix + req.Name,
			Name:  req.Name,
			Color: req.Color,
			Icon:  req.Icon,
		})
	}

	if err := h.categoryRepo.SaveSystemCategories(categories); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "System categories updated",
	})
}

func toCategoryResponse(category *models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:    category.ID,
		Name:  category.Name,
		Color: category.Color,
		Icon:  category.Icon,
	}
}
