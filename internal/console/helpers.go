package console

import (
	"fmt"
	"strconv"

	"faculty-crm/internal/managers"
)

func pageRequest(page int) managers.PageRequest {
	return managers.PageRequest{Page: page, PageSize: managers.DefaultPageSize}
}

// nextPage advances the page counter when the user asks for more rows.
func (c *Console) nextPage(page *int, info managers.PageInfo) bool {
	if *page >= info.TotalPages {
		return false
	}
	if !c.promptYesNo("Show next page?") {
		return false
	}
	*page++
	return true
}

// optional turns an empty answer into nil for partial updates.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func parseFloatOrZero(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

// exportEntity writes one of the entity listings to the export directory,
// in the format the user picks.
func (c *Console) exportEntity(entity string) {
	asXLSX := c.promptYesNo("Export as XLSX instead of CSV?")

	var (
		path string
		err  error
	)
	switch entity {
	case "faculty":
		path, err = c.Reports.ExportFaculty(c.ExportDir, asXLSX)
	case "students":
		path, err = c.Reports.ExportStudents(c.ExportDir, asXLSX)
	case "classes":
		path, err = c.Reports.ExportClasses(c.ExportDir, asXLSX)
	}
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nExported to %s\n", path)
}
