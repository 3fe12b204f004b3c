package cmd

import (
	"testing"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/pipeline"
)

func TestSummaryRowsReadProjectionTotals(t *testing.T) {
	proj := currentProjection(t)
	totals := proj.Totals

	got := map[string]string{}
	for _, row := range summaryRows(proj) {
		if len(row) == 2 {
			got[row[0]] = row[1]
		}
	}

	want := map[string]string{
		"Views":            cli.FormatNumber(totals.Views),
		"Registered users": cli.FormatNumber(542853),
		"Converted users":  cli.FormatNumber(22082),
		"Revenue":          cli.FormatCost(totals.Revenue),
		"Expenses":         cli.FormatCost(totals.Expenses()),
	}
	for label, v := range want {
		if got[label] != v {
			t.Errorf("%s = %q, want %q", label, got[label], v)
		}
	}
	if _, ok := got["First profitable month"]; !ok {
		t.Error("missing break-even row")
	}
}

func TestPlanRowsTotal(t *testing.T) {
	proj := currentProjection(t)
	b := pipeline.PlanRevenue(proj.Totals, config.DefaultTiers)
	rows := planRows(b)

	// four paid plans, separator, total
	if len(rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(rows))
	}
	total := rows[len(rows)-1]
	if total[0] != "Total" || total[3] != cli.FormatNumber(22082) || total[4] != cli.FormatCost(b.Revenue) {
		t.Fatalf("total row = %v", total)
	}
	if rows[0][0] != config.TierBasic {
		t.Fatalf("first plan = %q", rows[0][0])
	}
}
