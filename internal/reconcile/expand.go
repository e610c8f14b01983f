package reconcile

import (
	"sort"
	"time"

	"github.com/sekolahku/presensi-api/internal/models"
	"github.com/sekolahku/presensi-api/internal/period"
)

type occurrenceKey struct {
	slotID string
	date   string
}

func keyOf(slotID string, date time.Time) occurrenceKey {
	return occurrenceKey{slotID: slotID, date: date.Format(period.DateLayout)}
}

// ExpandDay enumerates every slot scheduled on the given date and resolves
// each one, producing pending rows for unreported periods. This backs the
// daily class-management view, which must show the full timetable.
func (r *Resolver) ExpandDay(
	slots []models.ScheduleSlot,
	date time.Time,
	records []models.AttendanceRecord,
	leaves []models.LeaveGrant,
) []Occurrence {
	date = period.DateOnly(date)
	weekday := models.WeekdayOf(date)

	// A day after today has nothing to reconcile yet: every period resolves
	// to pending, leaves included, and no alerts fire.
	if date.After(period.DateOnly(r.now)) {
		records = nil
		leaves = nil
	}

	recordsBySlot := make(map[string]*models.AttendanceRecord, len(records))
	for i := range records {
		rec := &records[i]
		if period.DateOnly(rec.Date).Equal(date) {
			recordsBySlot[rec.ScheduleSlotID] = rec
		}
	}

	leavesByTeacher := make(map[string]*models.LeaveGrant)
	for i := range leaves {
		lv := &leaves[i]
		if lv.Status == models.LeaveApproved && lv.Covers(date) {
			leavesByTeacher[lv.TeacherID] = lv
		}
	}

	numbers := NumberPeriods(slots)

	var out []Occurrence
	for _, slot := range slots {
		if slot.Weekday != weekday {
			continue
		}
		occ := r.Resolve(Input{
			Slot:   slot,
			Date:   date,
			Record: recordsBySlot[slot.ID],
			Leave:  leavesByTeacher[slot.TeacherID],
		})
		occ.PeriodNumber = numbers[slot.ID]
		out = append(out, occ)
	}

	sortOccurrences(out)
	return out
}

// MergeReported combines attendance rows with leave-implied occurrences over
// an inclusive date range. Unlike ExpandDay it does not enumerate the full
// timetable: a slot appears only when a row was reported or an approved
// leave covered its teacher, which is what the weekly statistics count.
// When both sources cover the same (slot, date) pair the attendance row wins.
func (r *Resolver) MergeReported(
	slots []models.ScheduleSlot,
	from, to time.Time,
	records []models.AttendanceRecord,
	leaves []models.LeaveGrant,
) []Occurrence {
	slotsByID := make(map[string]models.ScheduleSlot, len(slots))
	slotsByTeacher := make(map[string][]models.ScheduleSlot)
	for _, slot := range slots {
		slotsByID[slot.ID] = slot
		slotsByTeacher[slot.TeacherID] = append(slotsByTeacher[slot.TeacherID], slot)
	}
	numbers := NumberPeriods(slots)

	seen := make(map[occurrenceKey]struct{})
	var out []Occurrence

	for i := range records {
		rec := &records[i]
		slot, ok := slotsByID[rec.ScheduleSlotID]
		if !ok {
			continue
		}
		key := keyOf(rec.ScheduleSlotID, rec.Date)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		occ := r.Resolve(Input{Slot: slot, Date: rec.Date, Record: rec})
		occ.PeriodNumber = numbers[slot.ID]
		out = append(out, occ)
	}

	for i := range leaves {
		lv := &leaves[i]
		if lv.Status != models.LeaveApproved || !lv.Overlaps(from, to) {
			continue
		}
		for _, date := range period.DatesBetween(from, to) {
			if !lv.Covers(date) {
				continue
			}
			weekday := models.WeekdayOf(date)
			for _, slot := range slotsByTeacher[lv.TeacherID] {
				if slot.Weekday != weekday {
					continue
				}
				key := keyOf(slot.ID, date)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				occ := r.Resolve(Input{Slot: slot, Date: date, Leave: lv})
				occ.PeriodNumber = numbers[slot.ID]
				out = append(out, occ)
			}
		}
	}

	sortOccurrences(out)
	return out
}

// NumberPeriods assigns each slot its 1-based period number: slots of one
// class on one weekday are ordered by start time and numbered from 1.
func NumberPeriods(slots []models.ScheduleSlot) map[string]int {
	grouped := make(map[string][]models.ScheduleSlot)
	for _, slot := range slots {
		key := slot.ClassID + "|" + string(slot.Weekday)
		grouped[key] = append(grouped[key], slot)
	}

	numbers := make(map[string]int, len(slots))
	for _, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			a := period.NormalizeClock(group[i].StartTime)
			b := period.NormalizeClock(group[j].StartTime)
			if a != b {
				return a < b
			}
			return group[i].ID < group[j].ID
		})
		for i, slot := range group {
			numbers[slot.ID] = i + 1
		}
	}
	return numbers
}

func sortOccurrences(occs []Occurrence) {
	sort.SliceStable(occs, func(i, j int) bool {
		if !occs[i].Date.Equal(occs[j].Date) {
			return occs[i].Date.Before(occs[j].Date)
		}
		if occs[i].StartTime != occs[j].StartTime {
			return occs[i].StartTime < occs[j].StartTime
		}
		if occs[i].ClassName != occs[j].ClassName {
			return occs[i].ClassName < occs[j].ClassName
		}
		return occs[i].ScheduleSlotID < occs[j].ScheduleSlotID
	})
}
