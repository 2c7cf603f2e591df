package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/dto"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/response"
)

type exportBuilder interface {
	Build(ctx context.Context, req models.ReportRequest) (*service.ExportFile, error)
}

// ExportHandler renders exports synchronously.
type ExportHandler struct {
	exports exportBuilder
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportBuilder) *ExportHandler {
	return &ExportHandler{exports: exports}
}

func exportQuery(c *gin.Context) (dto.ExportQuery, error) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, appErrors.Clone(appErrors.ErrValidation, "invalid export query")
	}
	if q.Format == "" {
		q.Format = string(models.ReportFormatXLSX)
	}
	return q, nil
}

// Monthly godoc
// @Summary Download the monthly attendance matrix
// @Tags Exports
// @Produce application/pdf
// @Produce text/csv
// @Param kelas query string false "Class filter"
// @Param bulan query int true "Month 1-12"
// @Param tahun query int true "Year"
// @Param format query string false "csv, xlsx or pdf (default xlsx)"
// @Param tanggalTtd query string false "Signature date as DD/MM/YYYY"
// @Success 200 {file} file
// @Router /exports/monthly [get]
func (h *ExportHandler) Monthly(c *gin.Context) {
	q, err := exportQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.send(c, models.ReportRequest{
		Type:     models.ReportTypeMonthlyMatrix,
		Format:   models.ReportFormat(q.Format),
		Class:    q.Class,
		Month:    q.Month,
		Year:     q.Year,
		SignDate: q.SignDate,
	})
}

// Recap godoc
// @Summary Download a monthly or semester recap
// @Tags Exports
// @Produce application/pdf
// @Produce text/csv
// @Param type query string true "monthly or semester"
// @Param kelas query string false "Class filter"
// @Param bulan query int false "Month 1-12 for monthly recaps"
// @Param tahun query int true "Year"
// @Param semester query int false "1 or 2 for semester recaps"
// @Param format query string false "csv, xlsx or pdf (default xlsx)"
// @Param tanggalTtd query string false "Signature date as DD/MM/YYYY"
// @Success 200 {file} file
// @Router /exports/recap [get]
func (h *ExportHandler) Recap(c *gin.Context) {
	q, err := exportQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := models.ReportRequest{
		Format:   models.ReportFormat(q.Format),
		Class:    q.Class,
		Month:    q.Month,
		Year:     q.Year,
		Semester: models.Semester(q.Semester),
		SignDate: q.SignDate,
	}
	switch q.Type {
	case "monthly", string(models.ReportTypeMonthlyRecap):
		req.Type = models.ReportTypeMonthlyRecap
	case "semester", string(models.ReportTypeSemesterRecap):
		req.Type = models.ReportTypeSemesterRecap
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "type must be monthly or semester"))
		return
	}
	h.send(c, req)
}

func (h *ExportHandler) send(c *gin.Context, req models.ReportRequest) {
	file, err := h.exports.Build(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Name, file.Format.ContentType(), file.Data)
}
