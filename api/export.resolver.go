package api

import (
	"etfsim/internal/service"
	"etfsim/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) exportCsv(c *gin.Context) {
	in, err := inputFromQuery(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	result, err := m.runSimulation(c, in)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out, err := service.ExportCsv(result)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", result.Etf.Symbol, util.FormatDate(result.Start))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "text/csv; charset=utf-8", out)
}
