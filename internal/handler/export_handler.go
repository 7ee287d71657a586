package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/campus-api/internal/service"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
	"github.com/campuskit/campus-api/pkg/response"
)

// ExportHandler streams rendered exports to the client.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Roster downloads the enrollment roster for one course.
func (h *ExportHandler) Roster(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.Roster(c.Request.Context(), courseID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.send(c, result)
}

// Transcript downloads a student's academic record as PDF.
func (h *ExportHandler) Transcript(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.Transcript(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.send(c, result)
}

func (h *ExportHandler) send(c *gin.Context, result *service.ExportResult) {
	if result == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(200, result.ContentType, result.Payload)
}
