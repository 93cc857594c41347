package scheduling

import (
	"time"

	"drilltrack/internal/entities"
	"drilltrack/internal/workflow"
)

const (
	// Visible range padding around the scheduled span.
	RangePadBeforeDays = 2
	RangePadAfterDays  = 5

	// Default assignment window when no end date is given.
	DefaultWindowDays = 14

	// Horizontal gutter subtracted from every bar so adjacent bars
	// do not touch.
	BarGutterPx = 4

	DefaultDayWidthPx = 32
)

// TimelineDay is one column of the rendered timeline.
type TimelineDay struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	IsToday   bool   `json:"is_today"`
	IsWeekend bool   `json:"is_weekend"`
}

// TimelineBar positions one work order on the timeline, in both day
// and pixel units.
type TimelineBar struct {
	WorkOrderID string `json:"work_order_id"`
	WONumber    string `json:"wo_number"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	CrewID      string `json:"crew_id,omitempty"`
	RigID       string `json:"rig_id,omitempty"`

	Start string `json:"start"`
	End   string `json:"end"`

	OffsetDays int `json:"offset_days"`
	WidthDays  int `json:"width_days"`
	OffsetPx   int `json:"offset_px"`
	WidthPx    int `json:"width_px"`
}

// Timeline is the full Gantt layout for the orders that carry a
// scheduled start date.
type Timeline struct {
	RangeStart string        `json:"range_start"`
	RangeEnd   string        `json:"range_end"`
	TotalDays  int           `json:"total_days"`
	DayWidthPx int           `json:"day_width_px"`
	Days       []TimelineDay `json:"days"`
	Bars       []TimelineBar `json:"bars"`
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(midnight(to).Sub(midnight(from)).Hours() / 24)
}

// ComputeTimeline lays out every order with a scheduled start. Orders
// without one are skipped, they belong on the queue instead. The
// visible range spans from the earliest start minus the leading pad to
// the latest end plus the trailing pad. Overlapping bars are not
// resolved here, stacking is a rendering concern.
func ComputeTimeline(orders []entities.WorkOrder, dayWidthPx int, now time.Time) Timeline {
	if dayWidthPx <= 0 {
		dayWidthPx = DefaultDayWidthPx
	}

	tl := Timeline{
		DayWidthPx: dayWidthPx,
		Days:       []TimelineDay{},
		Bars:       []TimelineBar{},
	}

	var minStart, maxEnd time.Time
	scheduled := make([]entities.WorkOrder, 0, len(orders))
	for _, wo := range orders {
		if wo.ScheduledStart == nil {
			continue
		}
		start := midnight(*wo.ScheduledStart)
		end := start
		if wo.ScheduledEnd != nil {
			end = midnight(*wo.ScheduledEnd)
		}
		if end.Before(start) {
			end = start
		}
		if minStart.IsZero() || start.Before(minStart) {
			minStart = start
		}
		if maxEnd.IsZero() || end.After(maxEnd) {
			maxEnd = end
		}
		scheduled = append(scheduled, wo)
	}
	if len(scheduled) == 0 {
		return tl
	}

	rangeStart := minStart.AddDate(0, 0, -RangePadBeforeDays)
	rangeEnd := maxEnd.AddDate(0, 0, RangePadAfterDays)
	totalDays := daysBetween(rangeStart, rangeEnd) + 1

	tl.RangeStart = rangeStart.Format(time.DateOnly)
	tl.RangeEnd = rangeEnd.Format(time.DateOnly)
	tl.TotalDays = totalDays

	today := midnight(now)
	for i := 0; i < totalDays; i++ {
		d := rangeStart.AddDate(0, 0, i)
		tl.Days = append(tl.Days, TimelineDay{
			Date:      d.Format(time.DateOnly),
			DayOfWeek: d.Weekday().String()[:3],
			IsToday:   d.Equal(today),
			IsWeekend: d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
		})
	}

	for _, wo := range scheduled {
		start := midnight(*wo.ScheduledStart)
		end := start
		if wo.ScheduledEnd != nil {
			end = midnight(*wo.ScheduledEnd)
		}
		if end.Before(start) {
			end = start
		}

		offsetDays := daysBetween(rangeStart, start)
		widthDays := daysBetween(start, end) + 1
		if widthDays < 1 {
			widthDays = 1
		}

		bar := TimelineBar{
			WorkOrderID: wo.ID,
			WONumber:    wo.WONumber,
			Name:        wo.Name,
			Status:      string(wo.Status),
			Start:       start.Format(time.DateOnly),
			End:         end.Format(time.DateOnly),
			OffsetDays:  offsetDays,
			WidthDays:   widthDays,
			OffsetPx:    offsetDays * dayWidthPx,
			WidthPx:     widthDays*dayWidthPx - BarGutterPx,
		}
		if wo.AssignedCrewID != nil {
			bar.CrewID = *wo.AssignedCrewID
		}
		if wo.AssignedRigID != nil {
			bar.RigID = *wo.AssignedRigID
		}
		tl.Bars = append(tl.Bars, bar)
	}
	return tl
}

// DefaultWindow returns the scheduled span used when an assignment
// carries no explicit dates: today through today plus two weeks.
func DefaultWindow(now time.Time) (start, end time.Time) {
	start = midnight(now)
	end = start.AddDate(0, 0, DefaultWindowDays)
	return start, end
}

// QueueStatuses are the work-order statuses that appear on the
// dispatch queue awaiting assignment.
var QueueStatuses = []workflow.WorkOrderStatus{
	workflow.WorkOrderPending,
	workflow.WorkOrderApproved,
}
