package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimePreferenceAllows(t *testing.T) {
	assert.True(t, PreferNone.Allows("9"))
	assert.True(t, PreferMorning.Allows("4"))
	assert.False(t, PreferMorning.Allows("5"))
	assert.True(t, PreferAfternoon.Allows("5/6"))
	assert.False(t, PreferAfternoon.Allows("1"))
	assert.True(t, PreferMorning.Allows("4/5"))
	assert.True(t, PreferAfternoon.Allows("4/5"))
}

func TestParsePreference(t *testing.T) {
	assert.Equal(t, PreferMorning, ParsePreference(" AM "))
	assert.Equal(t, PreferAfternoon, ParsePreference("afternoon"))
	assert.Equal(t, PreferNone, ParsePreference(""))
}

func TestNewStaffSortsAndDedupes(t *testing.T) {
	s := NewStaff("Smith, John", []Period{"5", "1", "5"}, []Period{"8/9", "2"})
	assert.Equal(t, []Period{"1", "5"}, s.Need)
	assert.Equal(t, []Period{"2", "8/9"}, s.NeedCT)
	assert.NotNil(t, s.ConvertedCT)
}

func TestNewStaffCTWinsOverlap(t *testing.T) {
	s := NewStaff("Smith, John", []Period{"1", "2"}, []Period{"2"})
	assert.Equal(t, []Period{"1"}, s.Need)
	assert.Equal(t, []Period{"2"}, s.NeedCT)
}

func TestAvailabilityList(t *testing.T) {
	var a Availability
	*a.List(DutyISS) = append(*a.List(DutyISS), "3")
	assert.Equal(t, []Period{"3"}, a.ISS)
	assert.Empty(t, a.Standard)
}

func TestRosterOrder(t *testing.T) {
	r := NewRoster()
	r.Add(NewStaff("B", nil, nil))
	r.Add(NewStaff("A", nil, nil))
	r.Add(NewStaff("B", []Period{"1"}, nil))
	assert.Equal(t, []string{"B", "A"}, r.Names())
	b, ok := r.Get("B")
	require.True(t, ok)
	assert.Equal(t, []Period{"1"}, b.Need)

	unknown := r.MarkOut("A", "Z")
	assert.Equal(t, []string{"Z"}, unknown)
	out := r.Out()
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Name)
}
