package api

import (
	"etfsim/internal/service"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) chart(c *gin.Context) {
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

	img, err := service.RenderValueChart(result.Etf.ChartTitle(), result.Values)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.Data(200, "image/png", img)
}
