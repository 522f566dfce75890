package category

import (
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/middleware"
	authsvc "github.com/amirasaad/amanah/pkg/service/auth"
	categorysvc "github.com/amirasaad/amanah/pkg/service/category"
	"github.com/amirasaad/amanah/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers HTTP routes for income and expense categories.
//
// Routes:
//   - GET    /categories     : List categories, optionally ?type=income|expense.
//   - POST   /categories     : Create a category.
//   - GET    /categories/:id : Retrieve one category.
//   - PUT    /categories/:id : Rename or retype a category.
//   - DELETE /categories/:id : Delete a category no transaction uses.
func Routes(app *fiber.App, categorySvc *categorysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/categories", middleware.JwtProtected(cfg.Auth.Jwt))
	group.Get("/", ListCategories(categorySvc, authSvc))
	group.Post("/", CreateCategory(categorySvc, authSvc))
	group.Get("/:id", GetCategory(categorySvc, authSvc))
	group.Put("/:id", UpdateCategory(categorySvc, authSvc))
	group.Delete("/:id", DeleteCategory(categorySvc, authSvc))
}

// CreateCategory creates a category for the current user.
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 409 {object} common.ProblemDetails "Category already exists"
// @Router /categories [post]
// @Security Bearer
func CreateCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[CreateCategoryRequest](c)
		if input == nil {
			return err
		}
		cat, err := categorySvc.CreateCategory(c.Context(), userID, input.Name, input.Kind)
		if err != nil {
			log.Errorf("Failed to create category: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Category created", ToCategoryDTO(cat))
	}
}

// ListCategories lists the current user's categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Param type query string false "income or expense"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid type"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /categories [get]
// @Security Bearer
func ListCategories(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		categories, err := categorySvc.ListCategories(c.Context(), userID, c.Query("type"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list categories", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categories fetched", ToCategoryDTOs(categories))
	}
}

// GetCategory fetches one category.
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails "Category not found"
// @Router /categories/{id} [get]
// @Security Bearer
func GetCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		id, ok, err := common.ParamID(c, "Invalid category ID")
		if !ok {
			return err
		}
		cat, err := categorySvc.GetCategory(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category fetched", ToCategoryDTO(cat))
	}
}

// UpdateCategory renames or retypes a category.
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Category not found"
// @Failure 409 {object} common.ProblemDetails "Category already exists"
// @Router /categories/{id} [put]
// @Security Bearer
func UpdateCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		id, ok, err := common.ParamID(c, "Invalid category ID")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateCategoryRequest](c)
		if input == nil {
			return err
		}
		cat, err := categorySvc.UpdateCategory(c.Context(), userID, id, dto.CategoryUpdate{
			Name: input.Name,
			Kind: input.Kind,
		})
		if err != nil {
			log.Errorf("Failed to update category %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to update category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category updated", ToCategoryDTO(cat))
	}
}

// DeleteCategory deletes a category that no transaction references.
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails "Category not found"
// @Failure 409 {object} common.ProblemDetails "Category has transactions"
// @Router /categories/{id} [delete]
// @Security Bearer
func DeleteCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		id, ok, err := common.ParamID(c, "Invalid category ID")
		if !ok {
			return err
		}
		if err := categorySvc.DeleteCategory(c.Context(), userID, id); err != nil {
			log.Errorf("Failed to delete category %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to delete category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category deleted", fiber.Map{"id": id.String()})
	}
}
