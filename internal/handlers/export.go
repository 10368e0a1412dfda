package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"renovation-crm/internal/database"
	"renovation-crm/internal/export"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportClients streams every client as an XLSX workbook.
func ExportClients(c *gin.Context) {
	clients, err := database.ListClients()
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteClients(&buf, clients); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("clients-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
