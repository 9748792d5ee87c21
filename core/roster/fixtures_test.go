package roster

import (
	"github.com/kilianp07/coverage/core/model"
)

func scheduleHeader(prefix string) []string {
	h := []string{ColumnName, ColumnNeedCoverage}
	for n := 1; n <= model.MaxPeriod; n++ {
		h = append(h, prefix+model.Ordinal(n))
	}
	return h
}

func sampleRecords() [][]string {
	return [][]string{
		scheduleHeader(""),
		{"Smith, John", "1,3,5", "Class", "Class CT Doe", "Class", "Class", "Lunch", "Class", "Class", "Class", "Plan", "Class", "Class"},
		{"Doe, Jane", "2,4,6", "Class CT Smith", "Class", "Class", "Class", "Lunch", "Class", "Class", "Class", "Plan", "Class", "Class"},
		{"Brown, Bob", "1,4,11 CT-2,5/6,8/9,10", "Class", "Class", "Class", "Class", "Lunch", "Class", "Class", "Class", "Plan", "Class", "Class"},
		{"Wilson, Alice", "1,2,4,5/6,8/9,11", "Class", "Class", "Class", "Class", "Lunch", "Class", "Class", "Class", "Plan", "Class", "Class"},
	}
}

// dutyRecords lists who is free in each period. Rows are not staff rows, the
// cells name the staff member holding the duty.
func dutyRecords() [][]string {
	h := append([]string{ColumnName, ColumnNeedCoverage}, scheduleHeader(DutyColumnPrefix)[2:]...)
	row := func(name, need string, duties map[int]string) []string {
		r := make([]string, len(h))
		r[0], r[1] = name, need
		for n, v := range duties {
			r[n+1] = v
		}
		return r
	}
	return [][]string{
		h,
		row("Adams, Amy", "1,2", map[int]string{1: "Baker, Ben", 3: "ISS Baker, Ben", 5: "Cole, Cara - even days"}),
		row("Baker, Ben", "", map[int]string{1: "Cole, Cara", 2: "Cole, Cara - odd days", 4: "Baker, Ben - hall duty"}),
		row("Cole, Cara", "", map[int]string{6: "Smith-Jones, Dee"}),
		row("Smith-Jones, Dee", "", nil),
	}
}
