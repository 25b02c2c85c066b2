package api

import (
	"encoding/base64"
	"etfsim/internal/domain"
	"etfsim/internal/service"
	"etfsim/internal/util"
	"html/template"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	pageTitle   = "ETF Investment Simulator"
	pageHeading = "Global ETF Investment Simulator"
	emptyState  = "Simulation will appear here"
)

type dashboardForm struct {
	Symbol     string
	Start      string
	Investment string
}

type dashboardPage struct {
	Title      string
	Heading    string
	EmptyState string
	Etfs       []domain.Etf
	Form       dashboardForm
	Error      string

	// set once a simulation succeeded
	Result     *simulateResponse
	ChartData  template.URL
	ExportHref string
}

func newDashboardPage(form dashboardForm) dashboardPage {
	return dashboardPage{
		Title:      pageTitle,
		Heading:    pageHeading,
		EmptyState: emptyState,
		Etfs:       domain.ListEtfs(),
		Form:       form,
	}
}

func (m ApiHandler) dashboard(c *gin.Context) {
	form := dashboardForm{
		Symbol:     strings.ToUpper(c.DefaultQuery("symbol", domain.DefaultSymbol)),
		Start:      c.DefaultQuery("start", domain.DefaultStartDate),
		Investment: c.DefaultQuery("investment", "585"),
	}
	page := newDashboardPage(form)

	// nothing submitted yet
	if c.Query("symbol") == "" {
		c.HTML(200, "dashboard.html", page)
		return
	}

	in, err := inputFromQuery(c)
	if err != nil {
		page.Error = err.Error()
		c.HTML(statusForError(err), "dashboard.html", page)
		return
	}

	result, err := m.runSimulation(c, in)
	if err != nil {
		page.Error = err.Error()
		c.HTML(statusForError(err), "dashboard.html", page)
		return
	}

	img, err := service.RenderValueChart(result.Etf.ChartTitle(), result.Values)
	if err != nil {
		page.Error = err.Error()
		c.HTML(statusForError(err), "dashboard.html", page)
		return
	}

	response := newSimulateResponse(result)
	page.Result = &response
	page.ChartData = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img))
	page.ExportHref = "/export.csv?" + url.Values{
		"symbol":     {result.Etf.Symbol},
		"start":      {util.FormatDate(result.Start)},
		"investment": {result.Investment.String()},
	}.Encode()

	c.HTML(200, "dashboard.html", page)
}
