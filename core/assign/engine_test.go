package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/coverage/core/ledger"
	"github.com/kilianp07/coverage/core/model"
)

var day = Day{Date: "2026-02-20"}

func absent(name string, need ...model.Period) *model.Staff {
	s := model.NewStaff(name, need, nil)
	s.Out = true
	return s
}

func free(name string, standard ...model.Period) *model.Staff {
	s := model.NewStaff(name, nil, nil)
	s.Availability.Standard = standard
	return s
}

func rosterOf(staff ...*model.Staff) *model.Roster {
	r := model.NewRoster()
	for _, s := range staff {
		r.Add(s)
	}
	return r
}

func TestLeastUsedWins(t *testing.T) {
	a := absent("A", "1")
	b := free("B", "1")
	c := free("C", "1")
	l := ledger.New()
	l.Ensure("C").TimesCovered = 2
	l.Ensure("B")

	out := NewEngine(l, nil).Run(rosterOf(a, b, c), day)

	require.Len(t, out.Results, 1)
	res := out.Results[0]
	assert.True(t, res.Assigned)
	assert.Equal(t, "B", res.Covering)
	assert.Equal(t, TierStandard, res.Tier)
	assert.Equal(t, 1, l.Count("B"))
	assert.Equal(t, 2, l.Count("C"))
	assert.Empty(t, b.Availability.Standard)
	assert.Equal(t, []model.Period{"1"}, c.Availability.Standard)

	e, _ := l.Entry("B")
	assert.Equal(t, []ledger.LogEntry{{Date: "2026-02-20", CoveredFor: "A", Period: "1"}}, e.CoverageLog)
}

func TestTiesFollowLedgerOrder(t *testing.T) {
	l := ledger.New()
	l.Ensure("C")
	l.Ensure("B")
	out := NewEngine(l, nil).Run(rosterOf(absent("A", "1"), free("B", "1"), free("C", "1")), day)
	assert.Equal(t, "C", out.Results[0].Covering)
}

func TestRankingUpdatesBetweenPeriods(t *testing.T) {
	a := absent("A", "1", "2")
	b := free("B", "1", "2")
	c := free("C", "1", "2")
	l := ledger.New()
	out := NewEngine(l, nil).Run(rosterOf(a, b, c), day)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "B", out.Results[0].Covering)
	assert.Equal(t, "C", out.Results[1].Covering)
}

func TestSplitPeriodNeedsBothHalves(t *testing.T) {
	a := absent("A", "5/6")
	b := free("B", "5")
	c := free("C", "5", "6")
	l := ledger.New()
	out := NewEngine(l, nil).Run(rosterOf(a, b, c), day)

	res := out.Results[0]
	assert.True(t, res.Assigned)
	assert.Equal(t, "C", res.Covering)
	assert.Equal(t, []model.Period{"5"}, b.Availability.Standard)
	assert.Empty(t, c.Availability.Standard)
	assert.Equal(t, 0, l.Count("B"))
}

func TestSplitPeriodAcrossStandardAndDayList(t *testing.T) {
	a := absent("A", "8/9")
	b := free("B", "8")
	b.Availability.EvenDay = []model.Period{"9"}
	out := NewEngine(ledger.New(), nil).Run(rosterOf(a, b), Day{Date: "2026-02-20", Even: true})
	assert.Equal(t, "B", out.Results[0].Covering)
	assert.Empty(t, b.Availability.EvenDay)

	a2 := absent("A", "8/9")
	c := free("C", "8")
	c.Availability.ISS = []model.Period{"9"}
	out = NewEngine(ledger.New(), nil).Run(rosterOf(a2, c), day)
	assert.False(t, out.Results[0].Assigned, "halves from two tiers must not combine")
}

func TestSplitTokenListedAsAvailable(t *testing.T) {
	a := absent("A", "5/6")
	b := free("B", "5/6")
	out := NewEngine(ledger.New(), nil).Run(rosterOf(a, b), day)
	assert.Equal(t, "B", out.Results[0].Covering)
}

func TestISSFallback(t *testing.T) {
	a := absent("A", "1")
	b := free("B")
	b.Availability.ISS = []model.Period{"1", "2"}
	c := free("C", "4", "5", "6")
	out := NewEngine(ledger.New(), nil).Run(rosterOf(a, b, c), day)

	res := out.Results[0]
	assert.Equal(t, "B", res.Covering)
	assert.Equal(t, TierISS, res.Tier)
	assert.Equal(t, "(Close ISS)", res.Tier.Tag())
	assert.Equal(t, []model.Period{"2"}, b.Availability.ISS)
}

func TestStandardBeatsISSEvenWhenMoreUsed(t *testing.T) {
	a := absent("A", "1")
	b := free("B")
	b.Availability.ISS = []model.Period{"1"}
	c := free("C", "1")
	l := ledger.New()
	l.Ensure("B")
	l.Ensure("C").TimesCovered = 5
	out := NewEngine(l, nil).Run(rosterOf(a, b, c), day)
	assert.Equal(t, "C", out.Results[0].Covering)
	assert.Equal(t, TierStandard, out.Results[0].Tier)
}

func TestOtherDutyFallback(t *testing.T) {
	a := absent("A", "3")
	b := free("B")
	b.Availability.Other = []model.Period{"3"}
	out := NewEngine(ledger.New(), nil).Run(rosterOf(a, b), day)
	assert.Equal(t, TierOther, out.Results[0].Tier)
	assert.Equal(t, "(OTHER DUTY)", out.Results[0].Tier.Tag())
}

func TestNoAvailability(t *testing.T) {
	a := absent("A", "7")
	l := ledger.New()
	out := NewEngine(l, nil).Run(rosterOf(a, free("B", "1")), day)
	require.Len(t, out.Results, 1)
	assert.False(t, out.Results[0].Assigned)
	assert.Empty(t, out.Results[0].Covering)
	assert.Equal(t, 1, out.Unassigned())
	assert.Equal(t, 0, l.Count("B"))
}

func TestEvenOddDay(t *testing.T) {
	build := func() (*model.Roster, *model.Staff) {
		a := absent("A", "2")
		odd := free("Odd")
		odd.Availability.OddDay = []model.Period{"2"}
		even := free("Even")
		even.Availability.EvenDay = []model.Period{"2"}
		return rosterOf(a, odd, even), even
	}

	r, even := build()
	out := NewEngine(ledger.New(), nil).Run(r, Day{Date: "d", Even: true})
	assert.Equal(t, "Even", out.Results[0].Covering)
	assert.Empty(t, even.Availability.EvenDay)

	r, _ = build()
	out = NewEngine(ledger.New(), nil).Run(r, Day{Date: "d", Even: false})
	assert.Equal(t, "Odd", out.Results[0].Covering)
}

func TestAbsentStaffNeverCover(t *testing.T) {
	a := absent("A", "1")
	b := absent("B", "2")
	b.Availability.Standard = []model.Period{"1"}
	out := NewEngine(ledger.New(), nil).Run(rosterOf(a, b), day)
	assert.Equal(t, []string{"A", "B"}, out.Absent)
	for _, r := range out.Results {
		assert.False(t, r.Assigned)
	}
}

func TestNoDoubleBooking(t *testing.T) {
	a := absent("A", "1", "2", "3")
	b := absent("B", "1", "2", "3")
	c := free("C", "1", "2", "3")
	d := free("D", "1", "3")
	l := ledger.New()
	out := NewEngine(l, nil).Run(rosterOf(a, b, c, d), day)

	type slot struct {
		who    string
		period model.Period
	}
	used := map[slot]string{}
	assigned := 0
	for _, r := range out.Results {
		if !r.Assigned {
			continue
		}
		assigned++
		k := slot{r.Covering, r.Period}
		prev, dup := used[k]
		assert.False(t, dup, "%s double booked in %s (%s and %s)", r.Covering, r.Period, prev, r.Absent)
		used[k] = r.Absent
	}
	assert.Equal(t, 5, assigned)
	assert.Equal(t, 5, l.Count("C")+l.Count("D"))
	assert.Equal(t, 1, out.Unassigned())
}

func TestPreferenceFiltersNeeds(t *testing.T) {
	a := absent("A", "2", "6", "5/6")
	a.Preference = model.PreferAfternoon
	b := free("B", "2", "5", "6")
	out := NewEngine(ledger.New(), nil).Run(rosterOf(a, b), day)
	var periods []model.Period
	for _, r := range out.For("A") {
		periods = append(periods, r.Period)
	}
	assert.Equal(t, []model.Period{"5/6", "6"}, periods)
	assert.Equal(t, []model.Period{"2"}, b.Availability.Standard)
}

func TestCTNeedsMergedAndTagged(t *testing.T) {
	a := model.NewStaff("A", []model.Period{"4", "2"}, []model.Period{"3"})
	a.Out = true
	a.ConvertedCT = []model.Period{"2"}
	b := free("B", "2", "3", "4")
	out := NewEngine(ledger.New(), nil).Run(rosterOf(a, b), day)
	require.Len(t, out.Results, 3)
	assert.Equal(t, model.Period("2"), out.Results[0].Period)
	assert.True(t, out.Results[0].CT)
	assert.True(t, out.Results[1].CT)
	assert.False(t, out.Results[2].CT)
}

func TestLedgerMonotonic(t *testing.T) {
	a := absent("A", "1", "2", "3", "4")
	b := free("B", "1", "2")
	c := free("C", "3")
	l := ledger.New()
	out := NewEngine(l, nil).Run(rosterOf(a, b, c), day)
	total := 0
	logs := 0
	for _, n := range l.Names() {
		e, _ := l.Entry(n)
		total += e.TimesCovered
		logs += len(e.CoverageLog)
	}
	assigned := len(out.Results) - out.Unassigned()
	assert.Equal(t, 3, assigned)
	assert.Equal(t, assigned, total)
	assert.Equal(t, assigned, logs)
}

func TestEnsuresLedgerEntries(t *testing.T) {
	l := ledger.New()
	NewEngine(l, nil).Run(rosterOf(absent("A"), free("B")), day)
	assert.Equal(t, []string{"A", "B"}, l.Names())
}

func TestTierText(t *testing.T) {
	b, err := TierISS.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "iss", string(b))
	var tr Tier
	require.NoError(t, tr.UnmarshalText([]byte("other")))
	assert.Equal(t, TierOther, tr)
	assert.Equal(t, "", TierStandard.Tag())
}
