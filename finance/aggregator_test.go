package finance

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/BerniceZTT/client_crm/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func payments(amounts ...string) []models.Payment {
	out := make([]models.Payment, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, models.Payment{Amount: dec(a)})
	}
	return out
}

func project(totalCost string, paid ...string) models.Project {
	return models.Project{TotalCost: dec(totalCost), Payments: payments(paid...)}
}

func assertDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func TestPaidAmount(t *testing.T) {
	assertDec(t, "empty", PaidAmount(nil), "0")
	assertDec(t, "sum", PaidAmount(payments("300", "200")), "500")
}

func TestPaidAmountKeepsCents(t *testing.T) {
	// 1000 笔 0.1，浮点累加会出现误差
	many := make([]string, 1000)
	for i := range many {
		many[i] = "0.1"
	}
	assertDec(t, "many small payments", PaidAmount(payments(many...)), "100")
}

func TestProjectScenarios(t *testing.T) {
	cases := []struct {
		name        string
		project     models.Project
		remaining   string
		progress    string
		rawProgress string
	}{
		{"half paid", project("1000", "300", "200"), "500", "50", "50"},
		{"zero cost", project("0"), "0", "0", "0"},
		{"zero cost with payment", project("0", "10"), "-10", "0", "0"},
		{"overpaid", project("100", "120"), "-20", "100", "120"},
		{"overpaid by half", project("100", "150"), "-50", "100", "150"},
		{"nothing paid", project("250.50"), "250.50", "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertDec(t, "remaining", Remaining(tc.project, tc.project.Payments), tc.remaining)
			assertDec(t, "progress", ProgressPercent(tc.project, tc.project.Payments), tc.progress)
			assertDec(t, "raw progress", RawProgressPercent(tc.project, tc.project.Payments), tc.rawProgress)
		})
	}
}

func TestRemainingIsTotalMinusPaid(t *testing.T) {
	p := project("1234.56")
	ps := payments("0.01", "234.55", "1000")
	assertDec(t, "remaining", Remaining(p, ps), p.TotalCost.Sub(PaidAmount(ps)).String())
	assertDec(t, "remaining", Remaining(p, ps), "0")
}

func TestSummarize(t *testing.T) {
	view := Summarize(project("100", "120"))
	if !view.Overpaid {
		t.Fatal("expected overpaid flag")
	}
	assertDec(t, "paid", view.Paid, "120")
	assertDec(t, "progress", view.Progress, "100")
	assertDec(t, "raw", view.RawProgress, "120")

	view = Summarize(project("1000", "300", "200"))
	if view.Overpaid {
		t.Fatal("unexpected overpaid flag")
	}
}

func TestClientTotals(t *testing.T) {
	projects := []models.Project{
		project("1000", "300", "200"),
		project("100", "150"),
		project("0"),
	}
	assertDec(t, "revenue", TotalRevenue(projects), "650")
	// 500 + (-50) + 0
	assertDec(t, "pending", TotalPendingAcrossClient(projects), "450")
	assertDec(t, "empty revenue", TotalRevenue(nil), "0")
	assertDec(t, "empty pending", TotalPendingAcrossClient(nil), "0")
}

func TestDashboardPending(t *testing.T) {
	projects := []models.Project{{TotalCost: dec("1000")}, {TotalCost: dec("100")}}
	assertDec(t, "pending", DashboardPending(projects, payments("300", "200", "150")), "450")

	// 收款不属于任何传入项目时，两种口径结果不同
	orphan := payments("50")
	assertDec(t, "dashboard with orphan", DashboardPending(projects, orphan), "1050")
	assertDec(t, "client sum", TotalPendingAcrossClient(projects), "1100")
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{" 2.50 ", "2.5", true},
		{"0", "0", true},
		{"-1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"1,5", "1.5", true},
		{"1,000", "", false},
		{"1,234.56", "", false},
		{"1,2,3", "", false},
		{"12,", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(dec(tc.want)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if err != ErrInvalidAmount {
			t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}
