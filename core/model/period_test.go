package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		0: "0th", 1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th",
		13: "13th", 21: "21st", 22: "22nd", 23: "23rd", 101: "101st", 111: "111th",
		112: "112th", 113: "113th",
	}
	for n, want := range cases {
		assert.Equal(t, want, Ordinal(n), "n=%d", n)
	}
	assert.Equal(t, "1st", OrdinalLabel("1"))
	assert.Equal(t, "invalid", OrdinalLabel("invalid"))
}

func TestPeriodParts(t *testing.T) {
	assert.Equal(t, []Period{"3"}, Period("3").Parts())
	assert.Equal(t, []Period{"5", "6"}, Period("5/6").Parts())
	assert.True(t, Period("8/9").IsSplit())
	assert.False(t, Period("8").IsSplit())
	assert.Equal(t, "5th/6th", Period("5/6").Label())
	assert.Equal(t, "11th", Period("11").Label())
}

func TestSortPeriods(t *testing.T) {
	assert.Equal(t, []Period{"1", "3", "5/6"}, SortPeriods([]Period{"3", "5/6", "1"}))
	assert.Equal(t, []Period{"1", "2", "3", "5/6", "8/9"}, SortPeriods([]Period{"3", "5/6", "1", "8/9", "2"}))
	assert.Equal(t,
		[]Period{"1/2", "3/4", "5/6", "7/8", "9/10", "11/12"},
		SortPeriods([]Period{"11/12", "1/2", "3/4", "5/6", "7/8", "9/10"}))
	// equal keys keep input order
	assert.Equal(t,
		[]Period{"1/2", "1", "2", "3", "3/4", "5/6"},
		SortPeriods([]Period{"3", "1/2", "1", "3/4", "2", "5/6"}))
	assert.Empty(t, SortPeriods(nil))
}

func TestSortPeriodsInvalidLast(t *testing.T) {
	got := SortPeriods([]Period{"3", "invalid", "1", "5/6", "2"})
	assert.Equal(t, []Period{"1", "2", "3", "5/6", "invalid"}, got)
}

func TestSortPeriodsIdempotent(t *testing.T) {
	in := []Period{"10", "2", "8/9", "x", "1", "5/6"}
	once := SortPeriods(in)
	assert.Equal(t, once, SortPeriods(once))
	assert.Equal(t, []Period{"10", "2", "8/9", "x", "1", "5/6"}, in, "input must not be mutated")
}

func TestUniqueAndOrdered(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, UniqueAndOrdered([]int{1, 2, 1, 3, 2}))
	assert.Equal(t, []int{1, 2, 3, 4}, UniqueAndOrdered([]int{1, 2, 3, 2, 1, 4, 3}))
	assert.Equal(t, []string{"a", "b", "c"}, UniqueAndOrdered([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []int{1}, UniqueAndOrdered([]int{1, 1, 1, 1}))
	assert.Empty(t, UniqueAndOrdered([]int{}))
}

func TestRemovePeriod(t *testing.T) {
	ps := []Period{"1", "2", "3"}
	assert.True(t, RemovePeriod(&ps, "2"))
	assert.Equal(t, []Period{"1", "3"}, ps)
	assert.False(t, RemovePeriod(&ps, "2"))
}

func TestWithoutPeriods(t *testing.T) {
	assert.Equal(t, []Period{"1", "4"}, WithoutPeriods([]Period{"1", "2", "4"}, []Period{"2", "9"}))
	assert.Empty(t, WithoutPeriods(nil, []Period{"2"}))
}
