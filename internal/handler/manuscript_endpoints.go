package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcopy-server/internal/model"
)

// parsePagination читает limit и offset из query параметров запроса.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// parseIDParam читает UUID из path параметра.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Загрузка рукописи
// @Description Принимает файл рукописи (.docx или .pdf), извлекает текст и считает статистику
// @Tags manuscripts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл рукописи"
// @Success 201 {object} model.Manuscript "Загруженная рукопись"
// @Failure 400 {object} ErrorResponse "Неподдерживаемый формат"
// @Failure 413 {object} ErrorResponse "Файл слишком большой"
// @Failure 422 {object} ErrorResponse "Текст извлечь не удалось или он пуст"
// @Security BearerAuth
// @Router /manuscripts [post]
func (h *Handler) uploadManuscript(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "Missing file in form data"})
		return
	}

	if fileHeader.Size > h.maxUploadSize {
		handleServiceError(c, model.ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err), zap.String("filename", fileHeader.Filename))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		h.logger.Error("Failed to read uploaded file", zap.Error(err), zap.String("filename", fileHeader.Filename))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	if int64(len(data)) > h.maxUploadSize {
		handleServiceError(c, model.ErrFileTooLarge)
		return
	}

	m, err := h.manuscriptService.Upload(c.Request.Context(), userID, fileHeader.Filename, data)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// @Summary Список рукописей
// @Description Возвращает страницу рукописей пользователя, новые первыми
// @Tags manuscripts
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} model.ManuscriptSummary
// @Security BearerAuth
// @Router /manuscripts [get]
func (h *Handler) listManuscripts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, offset := parsePagination(c)

	items, err := h.manuscriptService.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if items == nil {
		items = []model.ManuscriptSummary{}
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Рукопись по ID
// @Tags manuscripts
// @Produce json
// @Param manuscript_id path string true "ID рукописи"
// @Success 200 {object} model.Manuscript
// @Failure 404 {object} ErrorResponse "Рукопись не найдена"
// @Security BearerAuth
// @Router /manuscripts/{manuscript_id} [get]
func (h *Handler) getManuscript(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	manuscriptID, ok := parseIDParam(c, "manuscript_id")
	if !ok {
		return
	}

	m, err := h.manuscriptService.Get(c.Request.Context(), userID, manuscriptID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary Удаление рукописи
// @Tags manuscripts
// @Produce json
// @Param manuscript_id path string true "ID рукописи"
// @Success 200 {object} map[string]interface{} "Рукопись удалена"
// @Failure 404 {object} ErrorResponse "Рукопись не найдена"
// @Security BearerAuth
// @Router /manuscripts/{manuscript_id} [delete]
func (h *Handler) deleteManuscript(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	manuscriptID, ok := parseIDParam(c, "manuscript_id")
	if !ok {
		return
	}

	if err := h.manuscriptService.Delete(c.Request.Context(), userID, manuscriptID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Manuscript deleted"})
}

// @Summary Журнал действий
// @Description Возвращает страницу журнала действий пользователя, новые первыми
// @Tags actions
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} model.ActionLogEntry
// @Security BearerAuth
// @Router /actions [get]
func (h *Handler) listActions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, offset := parsePagination(c)

	items, err := h.manuscriptService.Actions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if items == nil {
		items = []model.ActionLogEntry{}
	}

	c.JSON(http.StatusOK, items)
}
