package experience

import (
	"testing"
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func month(year int, m time.Month) Month {
	return Month(year*12 + int(m) - 1)
}

func TestParseRanges(t *testing.T) {
	ref := MonthOf(asOf)
	tests := []struct {
		name string
		text string
		want []Interval
	}{
		{
			name: "month names inclusive",
			text: "Senior Engineer, Jan 2020 - Dec 2023",
			want: []Interval{{month(2020, time.January), month(2024, time.January)}},
		},
		{
			name: "full month names with en dash",
			text: "January 2019 – March 2021",
			want: []Interval{{month(2019, time.January), month(2021, time.April)}},
		},
		{
			name: "numeric",
			text: "03/2018 - 05/2020",
			want: []Interval{{month(2018, time.March), month(2020, time.June)}},
		},
		{
			name: "year only",
			text: "2015 - 2018",
			want: []Interval{{month(2015, time.January), month(2018, time.January)}},
		},
		{
			name: "present",
			text: "Sept. 2023 to Present",
			want: []Interval{{month(2023, time.September), month(2024, time.July)}},
		},
		{
			name: "iso style",
			text: "2021-02 - current",
			want: []Interval{{month(2021, time.February), month(2024, time.July)}},
		},
		{
			name: "inverted range skipped",
			text: "2020 - 2015",
			want: nil,
		},
		{
			name: "invalid month skipped",
			text: "13/2019 - 02/2020",
			want: nil,
		},
		{
			name: "no range",
			text: "Led a team of 5 engineers",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRanges(tt.text, ref))
		})
	}
}

func TestParseRanges_ClampsFutureEnd(t *testing.T) {
	got := ParseRanges("Jan 2024 - Dec 2026", MonthOf(asOf))
	require.Len(t, got, 1)
	assert.Equal(t, month(2024, time.July), got[0].End)
}

func TestUnion(t *testing.T) {
	intervals := []Interval{
		{month(2018, time.January), month(2020, time.January)},
		{month(2015, time.January), month(2016, time.January)},
		{month(2019, time.June), month(2021, time.January)},
		{month(2021, time.January), month(2021, time.March)},
	}
	merged := Union(intervals)
	assert.Equal(t, []Interval{
		{month(2015, time.January), month(2016, time.January)},
		{month(2018, time.January), month(2021, time.March)},
	}, merged)
	assert.Equal(t, 12+38, TotalMonths(intervals))
	assert.Nil(t, Union(nil))
}

func TestYears_OverlapCountedOnce(t *testing.T) {
	lines := []string{
		"Engineer at Acme",
		"Jan 2020 - Dec 2023",
		"Consultant at Initech",
		"Jan 2022 - Dec 2022",
		"Engineer at Globex",
		"Jun 2016 - Dec 2019",
	}
	s := Years(lines, "", asOf)
	assert.InDelta(t, 7.6, s.Years, 1e-9)
	assert.False(t, s.FromPhrase)
	assert.Len(t, s.Intervals, 1)
	assert.True(t, s.Found())
}

func TestYears_PhraseFallback(t *testing.T) {
	s := Years([]string{"Engineer at Acme"}, "Over 6+ years of professional experience and 2 years experience in Go", asOf)
	assert.InDelta(t, 6.0, s.Years, 1e-9)
	assert.True(t, s.FromPhrase)

	s = Years(nil, "", asOf)
	assert.Zero(t, s.Years)
	assert.False(t, s.Found())
}

func TestYears_Deterministic(t *testing.T) {
	lines := []string{"2019 - Present", "Mar 2015 - Feb 2017"}
	assert.Equal(t, Years(lines, "", asOf), Years(lines, "", asOf))
}

func TestLevelForYears(t *testing.T) {
	tests := []struct {
		years float64
		want  types.ExperienceLevel
	}{
		{0, types.LevelEntry},
		{0.9, types.LevelEntry},
		{1, types.LevelJunior},
		{3, types.LevelMid},
		{4.9, types.LevelMid},
		{5, types.LevelSenior},
		{8, types.LevelLead},
		{12, types.LevelPrincipal},
		{15, types.LevelExecutive},
		{30, types.LevelExecutive},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForYears(tt.years), "years=%v", tt.years)
	}
}

func TestLevelFloorsDescending(t *testing.T) {
	for i := 1; i < len(levelFloors); i++ {
		assert.Greater(t, levelFloors[i-1].years, levelFloors[i].years, "floor %d", i)
	}
	assert.Zero(t, levelFloors[len(levelFloors)-1].years)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance(types.LevelSenior, types.LevelSenior))
	assert.Equal(t, 1, Distance(types.LevelSenior, types.LevelMid))
	assert.True(t, Adjacent(types.LevelLead, types.LevelSenior))
	assert.False(t, Adjacent(types.LevelEntry, types.LevelSenior))
	assert.Equal(t, -1, Distance("", types.LevelSenior))
}

func TestStripRanges(t *testing.T) {
	assert.Equal(t, "Software Engineer, Globex,", StripRanges("Software Engineer, Globex, 2016 - 2019"))
	assert.Equal(t, "", StripRanges("Jan 2020 - Present"))
}
