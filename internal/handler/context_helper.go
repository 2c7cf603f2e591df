package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/dto"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

func periodFromQuery(c *gin.Context) (service.Period, error) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return service.Period{}, appErrors.Clone(appErrors.ErrValidation, "bulan and tahun must be numbers")
	}
	return service.Period{Class: q.Class, Month: time.Month(q.Month), Year: q.Year}, nil
}

func generationFromQuery(c *gin.Context) (int64, error) {
	var q dto.GenerationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "generation must be a number")
	}
	return q.Generation, nil
}

func recapQuery(c *gin.Context) (dto.RecapQuery, error) {
	var q dto.RecapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, appErrors.Clone(appErrors.ErrValidation, "invalid recap query")
	}
	return q, nil
}

func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body")
	}
	return nil
}
