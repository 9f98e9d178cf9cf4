package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-records/internal/models"
	"github.com/noah-isme/uni-records/internal/service"
	"github.com/noah-isme/uni-records/pkg/response"
)

type adminService interface {
	List(ctx context.Context) ([]models.StudentOverview, error)
	RemoveStudent(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
	GroupByDominantGrade(ctx context.Context) ([]service.GradeGroup, error)
	PartitionPassFail(ctx context.Context) (*service.PassFailPartition, error)
	ExportOverview(ctx context.Context, format string) ([]byte, string, error)
}

// AdminHandler exposes the administrative endpoints.
type AdminHandler struct {
	admin adminService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(admin adminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// List returns all students with computed averages.
func (h *AdminHandler) List(c *gin.Context) {
	students, err := h.admin.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Remove deletes one student.
func (h *AdminHandler) Remove(c *gin.Context) {
	if err := h.admin.RemoveStudent(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Clear wipes the entire datastore.
func (h *AdminHandler) Clear(c *gin.Context) {
	if err := h.admin.ClearAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GradeGroups returns students grouped by dominant grade.
func (h *AdminHandler) GradeGroups(c *gin.Context) {
	groups, err := h.admin.GroupByDominantGrade(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// PassFail returns the pass/fail partition.
func (h *AdminHandler) PassFail(c *gin.Context) {
	partition, err := h.admin.PartitionPassFail(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, partition)
}

// ExportOverview streams the overview report as CSV or PDF.
func (h *AdminHandler) ExportOverview(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)
	raw, contentType, err := h.admin.ExportOverview(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("students-overview.%s", format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, raw)
}
