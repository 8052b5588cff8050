package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcopy-server/internal/model"
)

// @Summary Запуск генерации
// @Description Генерирует маркетинговый текст указанного типа по рукописи
// @Tags generations
// @Accept json
// @Produce json
// @Param manuscript_id path string true "ID рукописи"
// @Param request body generationRequest true "Тип генерации"
// @Success 201 {object} model.Generation "Результат генерации"
// @Failure 400 {object} ErrorResponse "Неизвестный тип генерации"
// @Failure 404 {object} ErrorResponse "Рукопись не найдена"
// @Failure 502 {object} model.Generation "Запись о неуспешной генерации"
// @Security BearerAuth
// @Router /manuscripts/{manuscript_id}/generate [post]
func (h *Handler) createGeneration(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	manuscriptID, ok := parseIDParam(c, "manuscript_id")
	if !ok {
		return
	}

	var req generationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	g, err := h.generationService.Generate(c.Request.Context(), userID, manuscriptID, req.Type)
	if err != nil {
		// Неуспешная генерация тоже сохраняется; клиент получает запись со статусом failed.
		if g.Status == model.GenerationStatusFailed {
			c.JSON(http.StatusBadGateway, g)
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, g)
}

// @Summary Список генераций по рукописи
// @Tags generations
// @Produce json
// @Param manuscript_id path string true "ID рукописи"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} model.Generation
// @Failure 404 {object} ErrorResponse "Рукопись не найдена"
// @Security BearerAuth
// @Router /manuscripts/{manuscript_id}/generations [get]
func (h *Handler) listGenerations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	manuscriptID, ok := parseIDParam(c, "manuscript_id")
	if !ok {
		return
	}
	limit, offset := parsePagination(c)

	items, err := h.generationService.ListByManuscript(c.Request.Context(), userID, manuscriptID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if items == nil {
		items = []model.Generation{}
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Результат генерации по ID
// @Tags generations
// @Produce json
// @Param generation_id path string true "ID генерации"
// @Success 200 {object} model.Generation
// @Failure 404 {object} ErrorResponse "Генерация не найдена"
// @Security BearerAuth
// @Router /generations/{generation_id} [get]
func (h *Handler) getGeneration(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	generationID, ok := parseIDParam(c, "generation_id")
	if !ok {
		return
	}

	g, err := h.generationService.Get(c.Request.Context(), userID, generationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, g)
}
