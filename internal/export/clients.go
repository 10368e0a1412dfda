package export

import (
	"fmt"
	"io"

	"renovation-crm/internal/models"

	"github.com/xuri/excelize/v2"
)

const clientsSheet = "Clients"

var clientHeaders = []string{
	"Name", "Type", "Status", "Source", "Phone", "Email", "Address",
	"Contact", "Contact phone", "Contact email", "Tax number", "Subscribed", "Created",
}

// WriteClients writes an XLSX workbook with one row per client, in the given order.
func WriteClients(w io.Writer, clients []models.Client) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", clientsSheet); err != nil {
		return err
	}

	for i, h := range clientHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(clientsSheet, cell, h); err != nil {
			return err
		}
	}

	for row, c := range clients {
		values := []any{
			c.Name,
			string(c.ClientType),
			c.Status,
			string(c.Source),
			c.Phone,
			c.Email,
			c.Address,
			c.ContactName,
			c.ContactPhone,
			c.ContactEmail,
			c.TaxNumber,
			yesNo(c.SubscribeConsent),
			c.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(clientsSheet, cell, v); err != nil {
				return err
			}
		}
	}

	endCell, _ := excelize.CoordinatesToCellName(len(clientHeaders), len(clients)+1)
	if err := f.AutoFilter(clientsSheet, "A1:"+endCell, []excelize.AutoFilterOptions{}); err != nil {
		return fmt.Errorf("autofilter: %w", err)
	}

	_, err := f.WriteTo(w)
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
