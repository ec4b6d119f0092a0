// Package export writes the availability board to an Excel workbook.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/slots"
)

const (
	SheetName    = "Schedule"
	headerRow    = 2
	firstDataRow = 3

	StatusFree = "Free"
)

var headers = []string{"Date", "Start", "End", "Session", "Status", "Booking ID"}

// Range limits the export to dates between Start and End (YYYY-MM-DD),
// inclusive. Empty bounds are open.
type Range struct {
	Start string
	End   string
}

func (r Range) contains(date string) bool {
	return (r.Start == "" || date >= r.Start) && (r.End == "" || date <= r.End)
}

func (r Range) title() string {
	switch {
	case r.Start == "" && r.End == "":
		return "Schedule: all dates"
	case r.End == "":
		return fmt.Sprintf("Schedule: from %s", r.Start)
	case r.Start == "":
		return fmt.Sprintf("Schedule: until %s", r.End)
	}
	return fmt.Sprintf("Schedule: %s - %s", r.Start, r.End)
}

// Schedule writes one row per availability window in r, ordered by date and
// start time, with the status of the booking matched to it.
func Schedule(w io.Writer, r Range, availabilities []domain.Availability, bookings []domain.Booking) error {
	f, err := build(r, availabilities, bookings)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// ScheduleFile is Schedule into a file named after the range inside dir.
// It returns the file path.
func ScheduleFile(dir string, r Range, availabilities []domain.Availability, bookings []domain.Booking) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}
	f, err := build(r, availabilities, bookings)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := "schedule.xlsx"
	if r.Start != "" || r.End != "" {
		name = fmt.Sprintf("schedule_%s_to_%s.xlsx", orAll(r.Start), orAll(r.End))
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}
	return path, nil
}

func build(r Range, availabilities []domain.Availability, bookings []domain.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	_ = f.SetCellValue(SheetName, "A1", r.title())
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.MergeCell(SheetName, "A1", lastCol+"1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(SheetName, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(SheetName, cell, h)
		_ = f.SetCellStyle(SheetName, cell, cell, headerStyle)
	}

	if err := writeRows(f, r, availabilities, bookings); err != nil {
		f.Close()
		return nil, err
	}

	_ = f.SetColWidth(SheetName, "A", "A", 14)
	_ = f.SetColWidth(SheetName, "B", "C", 10)
	_ = f.SetColWidth(SheetName, "D", "D", 25)
	_ = f.SetColWidth(SheetName, "E", "F", 38)
	return f, nil
}

func writeRows(f *excelize.File, r Range, availabilities []domain.Availability, bookings []domain.Booking) error {
	var inRange []domain.Availability
	for _, a := range availabilities {
		if r.contains(a.Date) {
			inRange = append(inRange, a)
		}
	}
	sort.SliceStable(inRange, func(i, j int) bool {
		if inRange[i].Date != inRange[j].Date {
			return inRange[i].Date < inRange[j].Date
		}
		return inRange[i].StartTime < inRange[j].StartTime
	})

	styles, err := statusStyles(f)
	if err != nil {
		return err
	}

	row := firstDataRow
	for _, a := range inRange {
		status, bookingID := StatusFree, ""
		if b := slots.FindBooking(bookings, a.ID, a.StartTime, a.Date); b != nil {
			status, bookingID = string(b.Status), b.ID
		}
		values := []any{a.Date, a.StartTime, a.EndTime, a.SessionName, status, bookingID}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", row, err)
		}
		statusCell, _ := excelize.CoordinatesToCellName(5, row)
		_ = f.SetCellStyle(SheetName, statusCell, statusCell, styles[status])
		row++
	}
	return nil
}

func statusStyles(f *excelize.File) (map[string]int, error) {
	colors := map[string]string{
		StatusFree:                   "#E2EFDA",
		string(domain.BookingOpen):   "#FFF2CC",
		string(domain.BookingBooked): "#F8CBAD",
	}
	out := make(map[string]int, len(colors))
	for status, color := range colors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("error creating style: %w", err)
		}
		out[status] = id
	}
	return out, nil
}

func orAll(date string) string {
	if date == "" {
		return "all"
	}
	return date
}
