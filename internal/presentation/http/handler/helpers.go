package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/pkg/pagination"
)

// paginationParams reads page-based pagination from the query string
func paginationParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	params.Validate()
	return params
}

// quoteStatusFromQuery maps a status query value to its enum, nil when absent
func quoteStatusFromQuery(c *gin.Context) *enum.QuoteStatus {
	switch c.Query("status") {
	case "concept":
		return statusPtr(enum.QuoteStatusConcept)
	case "voorcalculatie":
		return statusPtr(enum.QuoteStatusVoorcalculatie)
	case "verzonden":
		return statusPtr(enum.QuoteStatusVerzonden)
	case "geaccepteerd":
		return statusPtr(enum.QuoteStatusGeaccepteerd)
	case "afgewezen":
		return statusPtr(enum.QuoteStatusAfgewezen)
	}
	return nil
}

// quoteTypeFromQuery maps a type query value to its enum, nil when absent
func quoteTypeFromQuery(c *gin.Context) *enum.QuoteType {
	switch c.Query("type") {
	case "aanleg":
		t := enum.QuoteTypeAanleg
		return &t
	case "onderhoud":
		t := enum.QuoteTypeOnderhoud
		return &t
	}
	return nil
}

// invoiceStatusFromQuery maps a status query value to its enum, nil when absent
func invoiceStatusFromQuery(c *gin.Context) *enum.InvoiceStatus {
	switch c.Query("status") {
	case "concept":
		return invoiceStatusPtr(enum.InvoiceStatusConcept)
	case "definitief":
		return invoiceStatusPtr(enum.InvoiceStatusDefinitief)
	case "verzonden":
		return invoiceStatusPtr(enum.InvoiceStatusVerzonden)
	case "betaald":
		return invoiceStatusPtr(enum.InvoiceStatusBetaald)
	case "vervallen":
		return invoiceStatusPtr(enum.InvoiceStatusVervallen)
	}
	return nil
}

// projectStatusFromQuery maps a status query value to its enum, nil when absent
func projectStatusFromQuery(c *gin.Context) *enum.ProjectStatus {
	switch c.Query("status") {
	case "planning":
		return projectStatusPtr(enum.ProjectStatusPlanning)
	case "uitvoering":
		return projectStatusPtr(enum.ProjectStatusUitvoering)
	case "nacalculatie":
		return projectStatusPtr(enum.ProjectStatusNacalculatie)
	case "afgerond":
		return projectStatusPtr(enum.ProjectStatusAfgerond)
	}
	return nil
}

func statusPtr(s enum.QuoteStatus) *enum.QuoteStatus          { return &s }
func invoiceStatusPtr(s enum.InvoiceStatus) *enum.InvoiceStatus { return &s }
func projectStatusPtr(s enum.ProjectStatus) *enum.ProjectStatus { return &s }
