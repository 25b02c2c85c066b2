package api

import (
	"etfsim/internal/domain"

	"github.com/gin-gonic/gin"
)

type listEtfsResponse struct {
	Etfs          []domain.Etf `json:"etfs"`
	DefaultSymbol string       `json:"defaultSymbol"`
	DefaultStart  string       `json:"defaultStart"`
	DefaultInvest float64      `json:"defaultInvestment"`
}

func (m ApiHandler) listEtfs(c *gin.Context) {
	c.JSON(200, listEtfsResponse{
		Etfs:          domain.ListEtfs(),
		DefaultSymbol: domain.DefaultSymbol,
		DefaultStart:  domain.DefaultStartDate,
		DefaultInvest: domain.DefaultInvestment,
	})
}
