package report

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/ttr"
)

// utf8BOM keeps Excel happy with the Indonesian field contents.
const utf8BOM = "\xEF\xBB\xBF"

const csvTimeLayout = "2006-01-02 15:04"

var fullExportHeader = []string{
	"ID",
	"Provider",
	"INC",
	"Site Code",
	"Site Name",
	"Kategori",
	"Lokasi",
	"Status",
	"TTR Compliance",
	"Jam Open",
	"Max Jam Close",
	"Sisa TTR",
	"TTR Real",
	"Teknisi",
	"Penyebab",
	"Catatan Permanen",
}

// FullExportCSV renders one row per ticket in the fixed column order
// expected by the download collaborator: UTF-8 with BOM, comma
// separated, values quoted as needed.
func FullExportCSV(tickets []domain.Ticket, now time.Time) string {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	_ = w.Write(fullExportHeader)
	for i := range tickets {
		t := &tickets[i]
		ttrReal := ""
		if t.TTRRealHours != nil {
			ttrReal = formatHours(*t.TTRRealHours)
		}
		_ = w.Write([]string{
			t.ID,
			t.Provider,
			strings.Join(t.IncNumbers, ";"),
			t.SiteCode,
			t.SiteName,
			t.Kategori,
			t.LokasiText,
			string(t.Status),
			string(t.TTRCompliance),
			t.JamOpen.Format(csvTimeLayout),
			ttr.Deadline(t).Format(csvTimeLayout),
			formatHours(ttr.RemainingHours(t, now)),
			ttrReal,
			strings.Join(t.TeknisiList, ", "),
			t.Penyebab,
			t.PermanentNotes,
		})
	}
	w.Flush()
	return buf.String()
}

var summaryExportHeader = []string{
	"Kategori",
	"Total",
	"Closed",
	"Overdue",
	"On Progress",
	"Closed %",
}

// SummaryExportCSV renders one row per kategori group, in stable
// alphabetical order.
func SummaryExportCSV(byCategory map[string]CategorySummary) string {
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	_ = w.Write(summaryExportHeader)
	for _, cat := range categories {
		s := byCategory[cat]
		_ = w.Write([]string{
			cat,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Closed),
			strconv.Itoa(s.Overdue),
			strconv.Itoa(s.OnProgress),
			strconv.Itoa(PercentClosed(s.Closed, s.Total)),
		})
	}
	w.Flush()
	return buf.String()
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}
