package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dreem/pkg/journal"
	"tableflip.dev/dreem/pkg/moon"
	"tableflip.dev/dreem/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints a month grid with journaled days highlighted and draft days
// dimmed differently, plus today's moon phase underneath.
func (pp *PrettyPrint) Calendar(on time.Time, items ...journal.DisplayItem) {
	then := time.Date(on.Year(), on.Month(), 1, 1, 0, 0, 0, time.Local)
	days := DaysIn(then)

	marks := make([]int, days)
	for _, item := range items {
		when, err := timeutil.ParseDateKey(item.DateKey)
		if err != nil {
			continue
		}
		if when.Month() != then.Month() || when.Year() != then.Year() {
			continue
		}
		day := when.Day() - 1
		if item.IsDraft {
			if marks[day] == 0 {
				marks[day] = 2
			}
		} else {
			marks[day] = 1
		}
	}

	pp.printMonthMarks(then, marks)

	phase, emoji := moon.PhaseForDate(time.Now())
	_, _ = color.New(color.Faint).Printf("today: %s %s\n\n", emoji, phase)
}

func (pp *PrettyPrint) printMonthMarks(then time.Time, marks []int) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month().String(), then.Year())
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	tf.Printf("%s%s\n", strings.Repeat(" ", mid), m)

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		fmt.Print("   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	l3 := color.New(color.FgHiYellow)

	for i := 0; i < days; i++ {
		printer := l1
		if i < len(marks) {
			switch marks[i] {
			case 1:
				printer = l2
			case 2:
				printer = l3
			}
		}
		printer.Printf("%2d ", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Local().Year(), then.Local().Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, then.Location()).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, then.Location()).Weekday()
}
