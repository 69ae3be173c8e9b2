package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// AttributeHandler maneja las definiciones de atributos de una categoría.
type AttributeHandler struct {
	uc *usecase.AttributeUseCase
}

// NewAttributeHandler construye el handler.
func NewAttributeHandler(uc *usecase.AttributeUseCase) *AttributeHandler {
	return &AttributeHandler{uc: uc}
}

// Create godoc
// @Summary      Declarar atributo sobre una categoría
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.CreateAttributeRequest  true  "Definición del atributo"
// @Success      201   {object}  dto.AttributeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes [post]
func (h *AttributeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAttributeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar atributos de una categoría
// @Tags         attributes
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.AttributeListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes [get]
func (h *AttributeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar definición de atributo
// @Description  Renombrar conserva los valores existentes (el almacenamiento indexa por id de definición). Cambiar el tipo deja huérfanos los valores del tipo anterior.
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la categoría"
// @Param        attrID  path  string  true  "ID del atributo"
// @Param        body    body  dto.UpdateAttributeRequest  true  "Datos a actualizar"
// @Success      200     {object}  dto.AttributeResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes/{attrID} [put]
func (h *AttributeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAttributeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), c.Params("attrID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar definición de atributo
// @Description  Los valores existentes bajo la definición quedan huérfanos y desaparecen de las lecturas siguientes.
// @Tags         attributes
// @Param        id      path  string  true  "ID de la categoría"
// @Param        attrID  path  string  true  "ID del atributo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes/{attrID} [delete]
func (h *AttributeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), c.Params("attrID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
