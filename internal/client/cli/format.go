package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/hirepad/internal/client/models"
	"github.com/dmitrijs2005/hirepad/internal/client/services"
)

// table prints aligned columns.
func (a *App) table(headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

func (a *App) score(v float64) string {
	return services.FormatScore(v, a.color)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func companyName(j models.Job) string {
	if j.Company == nil {
		return "-"
	}
	return orDash(j.Company.Name)
}

func salary(j models.Job) string {
	cur := j.Currency
	if cur == "" {
		cur = "USD"
	}
	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return fmt.Sprintf("%.0f-%.0f %s", *j.SalaryMin, *j.SalaryMax, cur)
	case j.SalaryMin != nil:
		return fmt.Sprintf("from %.0f %s", *j.SalaryMin, cur)
	case j.SalaryMax != nil:
		return fmt.Sprintf("up to %.0f %s", *j.SalaryMax, cur)
	default:
		return "-"
	}
}

func jobRows(jobs []models.Job) [][]string {
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{j.ID, truncate(j.Title, 40), companyName(j), orDash(j.Location), orDash(j.RemoteType), orDash(j.EmploymentType)})
	}
	return rows
}

var jobHeaders = []string{"ID", "TITLE", "COMPANY", "LOCATION", "REMOTE", "TYPE"}

func formatDate(a models.Application) string {
	if a.CreatedAt.IsZero() {
		return "-"
	}
	return a.CreatedAt.Format("2006-01-02")
}
