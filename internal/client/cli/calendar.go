package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vkuzmenko/classmate/internal/client/controller"
	"github.com/vkuzmenko/classmate/internal/client/models"
)

// calendarNow is a test seam for the today/overdue markers.
var calendarNow = time.Now

// dayBucket holds the assignments due on one calendar day.
type dayBucket struct {
	Day   time.Time
	Items []models.Assignment
}

// bucketByDueDate groups assignments by calendar day in local time, ascending
// by day. Assignments within a day keep their input order.
func bucketByDueDate(items []models.Assignment) []dayBucket {
	byDay := make(map[time.Time][]models.Assignment)
	for _, item := range items {
		day := dayOf(item.DueDate.Local())
		byDay[day] = append(byDay[day], item)
	}

	buckets := make([]dayBucket, 0, len(byDay))
	for day, dayItems := range byDay {
		buckets = append(buckets, dayBucket{Day: day, Items: dayItems})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Day.Before(buckets[j].Day) })
	return buckets
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Calendar renders an agenda of assignments grouped by due date, optionally
// scoped to one classroom. Each day is marked today or overdue relative to
// the local clock.
func (a *App) Calendar(ctx context.Context, classroomID string) error {
	if !a.allow("") {
		return nil
	}

	ctl := controller.NewList(func(ctx context.Context) ([]models.Assignment, error) {
		if classroomID != "" {
			return a.assignments.ListForClassroom(ctx, classroomID)
		}
		return a.assignments.List(ctx)
	}, a.log)
	defer ctl.Close()

	ctl.Load(ctx)
	st := ctl.State()
	if st.Phase == controller.Errored {
		fmt.Fprintf(a.out, "Error: %s\n", st.Message)
		fmt.Fprintln(a.out, "Run the command again to retry.")
		return nil
	}
	if len(st.Items) == 0 {
		fmt.Fprintln(a.out, "No assignments to show.")
		return nil
	}

	today := dayOf(calendarNow())
	for _, b := range bucketByDueDate(st.Items) {
		fmt.Fprintf(a.out, "%s%s\n", b.Day.Format("Mon, 02 Jan 2006"), dayMarker(b.Day, today))
		for _, item := range b.Items {
			fmt.Fprintf(a.out, "  %s  %s\n", item.ID, item.Title)
		}
	}
	return nil
}

func dayMarker(day, today time.Time) string {
	switch {
	case day.Equal(today):
		return " (today)"
	case day.Before(today):
		return " (overdue)"
	}
	return ""
}
