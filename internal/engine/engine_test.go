package engine

import (
	"math"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

func presetParams(t *testing.T, name string) model.Params {
	t.Helper()
	p, ok := config.LookupPreset(name)
	if !ok {
		t.Fatalf("preset %q not found", name)
	}
	return p.Params
}

func costAnalysis(t *testing.T) Option {
	t.Helper()
	s, ok := config.LookupSchedule(config.ScheduleCostAnalysis)
	if !ok {
		t.Fatal("cost-analysis schedule missing")
	}
	return WithSchedule(s)
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCompute_MonthsInOrder(t *testing.T) {
	records := Compute(presetParams(t, config.PresetCurrent))
	if len(records) != Months {
		t.Fatalf("got %d records, want %d", len(records), Months)
	}
	for i, r := range records {
		if r.Month != i+1 {
			t.Errorf("records[%d].Month = %d, want %d", i, r.Month, i+1)
		}
	}
}

func TestCompute_BaseMonths(t *testing.T) {
	// Base months ignore the curve coefficients entirely.
	for _, p := range []model.Params{
		presetParams(t, config.PresetCurrent),
		presetParams(t, config.PresetCapital),
		{LogB: 2},
	} {
		r := Compute(p)
		m1, m2 := r[0], r[1]
		if m1.Views != 100801 || m1.RegisteredUsers != 5463 || m1.ConvertedUsers != 33 {
			t.Errorf("month 1 = %+v", m1)
		}
		if m1.RepeatPurchases != 0 || m1.RepeatPurchaseRate != 0 {
			t.Errorf("month 1 repeat = %d @ %.1f%%, want 0", m1.RepeatPurchases, m1.RepeatPurchaseRate)
		}
		if m2.Views != 200000 || m2.RegisteredUsers != 10840 || m2.ConvertedUsers != 130 {
			t.Errorf("month 2 = %+v", m2)
		}
		if m2.RepeatPurchaseRate != 10 || m2.RepeatPurchases != 3 {
			t.Errorf("month 2 repeat = %d @ %.1f%%, want 3 @ 10%%", m2.RepeatPurchases, m2.RepeatPurchaseRate)
		}
	}
}

func TestCompute_CurrentTrajectory(t *testing.T) {
	r := Compute(presetParams(t, config.PresetCurrent))

	wantViews := []int64{100801, 200000, 286763, 350116, 426139, 517366, 626840, 758208, 915849, 1105019, 1332023, 1604427}
	wantRegistered := []int64{5463, 10840, 16424, 20590, 25716, 32016, 39753, 49249, 60896, 75171, 92660, 114075}
	wantConverted := []int64{33, 130, 250, 454, 709, 1028, 1432, 1942, 2587, 3398, 4419, 5700}
	wantRepeat := []int64{0, 3, 16, 35, 73, 128, 206, 315, 466, 673, 951, 1326}
	wantRevenue := []float64{333.63, 1344.63, 2689.26, 4943.79, 7906.02, 11687.16, 16560.18, 22818.27, 30865.83, 41157.81, 54290.70, 71032.86}

	for i := range r {
		if r[i].Views != wantViews[i] {
			t.Errorf("month %d views = %d, want %d", i+1, r[i].Views, wantViews[i])
		}
		if r[i].RegisteredUsers != wantRegistered[i] {
			t.Errorf("month %d registered = %d, want %d", i+1, r[i].RegisteredUsers, wantRegistered[i])
		}
		if r[i].ConvertedUsers != wantConverted[i] {
			t.Errorf("month %d converted = %d, want %d", i+1, r[i].ConvertedUsers, wantConverted[i])
		}
		if r[i].RepeatPurchases != wantRepeat[i] {
			t.Errorf("month %d repeat = %d, want %d", i+1, r[i].RepeatPurchases, wantRepeat[i])
		}
		if !near(r[i].Revenue, wantRevenue[i], 0.005) {
			t.Errorf("month %d revenue = %.2f, want %.2f", i+1, r[i].Revenue, wantRevenue[i])
		}
	}
}

func TestCompute_WithCapital(t *testing.T) {
	r := Compute(presetParams(t, config.PresetCapital))

	wantViews := []int64{100801, 200000, 447430, 642402, 915362, 1297507, 1832510, 2581515, 3630120, 5098169, 7153436, 10030810}
	wantRevenue := []float64{333.63, 1344.63, 8229.54, 16155.78, 27984.48, 46091.49, 73651.35, 115334.88, 178037.10, 271908.45, 411921.84, 620015.97}
	for i := range r {
		if r[i].Views != wantViews[i] {
			t.Errorf("month %d views = %d, want %d", i+1, r[i].Views, wantViews[i])
		}
		if !near(r[i].Revenue, wantRevenue[i], 0.005) {
			t.Errorf("month %d revenue = %.2f, want %.2f", i+1, r[i].Revenue, wantRevenue[i])
		}
	}
	if r[11].RegisteredUsers != 713191 || r[11].ConvertedUsers != 51031 {
		t.Errorf("month 12 = %d registered, %d converted", r[11].RegisteredUsers, r[11].ConvertedUsers)
	}
}

func TestCompute_RowIdentities(t *testing.T) {
	for _, name := range []string{config.PresetCurrent, config.PresetCapital} {
		for i, r := range Compute(presetParams(t, name)) {
			if r.TotalConversions != r.ConvertedUsers+r.RepeatPurchases {
				t.Errorf("%s month %d: total %d != %d + %d", name, r.Month, r.TotalConversions, r.ConvertedUsers, r.RepeatPurchases)
			}
			if r.Revenue != float64(r.TotalConversions)*10.11 {
				t.Errorf("%s month %d: revenue %.4f != %d * 10.11", name, r.Month, r.Revenue, r.TotalConversions)
			}
			if !near(r.NetProfit, r.Revenue-r.Costs.Total(), 1e-9) {
				t.Errorf("%s month %d: net profit mismatch", name, r.Month)
			}
			if r.FreeUsers+r.PaidUsers != r.RegisteredUsers {
				t.Errorf("%s month %d: free+paid != registered", name, r.Month)
			}
			if i == 0 && r.RepeatPurchases != 0 {
				t.Errorf("%s month 1 has repeat purchases", name)
			}
		}
	}
}

func TestCompute_RepeatDependsOnPreviousMonth(t *testing.T) {
	r := Compute(presetParams(t, config.PresetCurrent))
	for i := 1; i < len(r); i++ {
		want := int64(math.Floor(float64(r[i-1].ConvertedUsers)*r[i].RepeatPurchaseRate/100 + 0.5))
		if r[i].RepeatPurchases != want {
			t.Errorf("month %d repeat = %d, want %d", r[i].Month, r[i].RepeatPurchases, want)
		}
	}
	if r[11].RepeatPurchaseRate != 30 {
		t.Errorf("month 12 repeat rate = %.2f, want 30", r[11].RepeatPurchaseRate)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	p := presetParams(t, config.PresetCurrent)
	first := Compute(p)
	for range 5 {
		again := Compute(p)
		if again[11].Views != first[11].Views {
			t.Fatalf("month 12 views changed: %d vs %d", again[11].Views, first[11].Views)
		}
	}
}

func TestCompute_PresetSwitchRestoresTable(t *testing.T) {
	cur := presetParams(t, config.PresetCurrent)
	before := Compute(cur)

	p := presetParams(t, config.PresetCapital)
	_ = Compute(p)
	p = presetParams(t, config.PresetCurrent)
	if p != cur {
		t.Fatalf("preset params changed: %+v vs %+v", p, cur)
	}
	after := Compute(p)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("month %d differs after switching presets", i+1)
		}
	}
}

func TestConversionRate_Clamped(t *testing.T) {
	cases := []model.Params{
		{LogA: 1000, LogB: 1.1, LogC: 0, LogD: 50},
		{LogA: -1000, LogB: 1.1, LogC: 0, LogD: -50},
		{LogA: 3, LogB: 3, LogC: 0.9, LogD: -5},
		{LogA: math.NaN(), LogB: 3},
		{LogA: math.Inf(1), LogB: 3, LogC: -1},
	}
	for _, p := range cases {
		for month := 1; month <= Months; month++ {
			cr := ConversionRate(p, month)
			if math.IsNaN(cr) || cr < 0 || cr > 100 {
				t.Errorf("ConversionRate(%+v, %d) = %v, out of [0,100]", p, month, cr)
			}
		}
		for _, r := range Compute(p) {
			if r.ConversionRate < 0 || r.ConversionRate > 100 {
				t.Errorf("record conversion rate %v out of range", r.ConversionRate)
			}
		}
	}
}

func TestConversionRate_DomainGuards(t *testing.T) {
	tests := []struct {
		name  string
		p     model.Params
		month int
	}{
		{"month at shift", model.Params{LogA: 3, LogB: 3, LogC: 3}, 3},
		{"month below shift", model.Params{LogA: 3, LogB: 3, LogC: 5}, 3},
		{"base one", model.Params{LogA: 3, LogB: 1, LogD: 2}, 5},
		{"base zero", model.Params{LogA: 3, LogB: 0, LogD: 2}, 5},
		{"negative base", model.Params{LogA: 3, LogB: -2, LogD: 2}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConversionRate(tt.p, tt.month); got != 0 {
				t.Fatalf("ConversionRate = %v, want 0", got)
			}
		})
	}
}

func TestViews_NegativeCurveClampsToZero(t *testing.T) {
	p := model.Params{ExpA: 10000, ExpB: 0.1, ExpC: 2, ExpD: -100000, LogB: 3}
	if got := Views(p, 5); got != 0 {
		t.Fatalf("Views = %d, want 0", got)
	}
	// Month 3 still earns repeat purchases from month 2.
	for _, r := range Compute(p)[3:] {
		if r.RegisteredUsers != 0 || r.Revenue != 0 {
			t.Fatalf("month %d should be empty: %+v", r.Month, r)
		}
	}
}

func TestRoundCount(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0.5, 1},
		{1.49, 1},
		{2.5, 3},
		{-3, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{1e15, 1e15},
		{1e300, MaxCount},
	}
	for _, tt := range tests {
		if got := roundCount(tt.in); got != tt.want {
			t.Errorf("roundCount(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCompute_RunawayCurveSaturates(t *testing.T) {
	p := presetParams(t, config.PresetCurrent)
	p.ExpB = 100
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	records := Compute(p)
	last := records[len(records)-1]
	if last.Views != MaxCount {
		t.Fatalf("month 12 views = %d, want %d", last.Views, int64(MaxCount))
	}
	for _, r := range records {
		if r.Views < 0 || r.RegisteredUsers < 0 || r.ConvertedUsers < 0 || r.TotalConversions < 0 {
			t.Fatalf("month %d has a negative count: %+v", r.Month, r)
		}
		if r.Views > MaxCount || r.RegisteredUsers > r.Views {
			t.Fatalf("month %d out of range: views=%d registered=%d", r.Month, r.Views, r.RegisteredUsers)
		}
	}
	if last.RegisteredUsers == 0 || last.Revenue <= 0 {
		t.Fatalf("saturated month should still convert: %+v", last)
	}
}

func TestCostSchedules(t *testing.T) {
	p := presetParams(t, config.PresetCurrent)
	overview := Compute(p)
	analysis := Compute(p, costAnalysis(t))

	m1, a1 := overview[0], analysis[0]
	if m1.Costs.Development != 1500 || a1.Costs.Development != 0 {
		t.Errorf("month 1 development = %.2f / %.2f, want 1500 / 0", m1.Costs.Development, a1.Costs.Development)
	}
	if m1.MarketingRate != 60 || a1.MarketingRate != 50 {
		t.Errorf("month 1 marketing rate = %.2f / %.2f, want 60 / 50", m1.MarketingRate, a1.MarketingRate)
	}
	if !near(overview[11].MarketingRate, 35, 1e-9) || !near(analysis[11].MarketingRate, 25, 1e-9) {
		t.Errorf("month 12 marketing rate = %.4f / %.4f, want 35 / 25", overview[11].MarketingRate, analysis[11].MarketingRate)
	}
	if !near(a1.Costs.Marketing, 166.815, 1e-9) {
		t.Errorf("cost-analysis month 1 marketing = %.4f, want 166.815", a1.Costs.Marketing)
	}
	if !near(m1.Costs.Tokens, 431.450415, 1e-6) || m1.FreeUsers != 4644 || m1.PaidUsers != 819 {
		t.Errorf("month 1 tokens = %.6f (%d free, %d paid)", m1.Costs.Tokens, m1.FreeUsers, m1.PaidUsers)
	}
	if m1.Costs.Infrastructure != 150 {
		t.Errorf("month 1 infrastructure = %.2f, want 150", m1.Costs.Infrastructure)
	}
	if !near(overview[11].Costs.Infrastructure, 150*math.Pow(1.1, 11), 1e-9) {
		t.Errorf("month 12 infrastructure = %.4f", overview[11].Costs.Infrastructure)
	}
	for i, r := range analysis {
		if r.Programmers != max(0, r.Month-2) {
			t.Errorf("month %d programmers = %d", r.Month, r.Programmers)
		}
		if r.Costs.Development != float64(r.Programmers)*1500 {
			t.Errorf("month %d development = %.2f", r.Month, r.Costs.Development)
		}
		if overview[i].Costs.Development != float64(r.Month)*1500 {
			t.Errorf("overview month %d development = %.2f", r.Month, overview[i].Costs.Development)
		}
	}
}

func TestFlatTokenRate(t *testing.T) {
	a := config.DefaultAssumptions()
	a.TokenCostPerUser = 0.037
	r := Compute(presetParams(t, config.PresetCurrent), WithAssumptions(a))
	if !near(r[0].Costs.Tokens, 5463*0.037, 1e-9) {
		t.Fatalf("flat token cost = %.4f, want %.4f", r[0].Costs.Tokens, 5463*0.037)
	}
}

func TestNew_Defaults(t *testing.T) {
	e := New()
	if e.Schedule().Name != config.ScheduleOverview {
		t.Errorf("default schedule = %q", e.Schedule().Name)
	}
	if e.Assumptions().ConversionValue != 10.11 {
		t.Errorf("default conversion value = %v", e.Assumptions().ConversionValue)
	}
}

func BenchmarkCompute(b *testing.B) {
	p, _ := config.LookupPreset(config.PresetCapital)
	e := New()
	b.ReportAllocs()
	for b.Loop() {
		_ = e.Compute(p.Params)
	}
}
