package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Period is the part of day a slot covers.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// SlotDateLayout is the calendar date form used in slot keys.
const SlotDateLayout = "2006-01-02"

var periodOrder = map[Period]int{
	PeriodMorning:   1,
	PeriodAfternoon: 2,
	PeriodEvening:   3,
}

func ValidPeriod(p Period) bool {
	_, ok := periodOrder[p]
	return ok
}

// TimeSlot is one selectable unit of availability: a calendar date plus a
// period of the day.
type TimeSlot struct {
	Date   string `json:"dateStr"`
	Period Period `json:"period"`
}

// Key is the derived identity used for set membership and storage.
func (t TimeSlot) Key() string {
	return t.Date + "_" + string(t.Period)
}

// ParseSlotKey parses a stored slot key. Dated keys have the form
// "2025-08-31_morning". Legacy keys used a relative day number 1..7
// ("3_morning"); those are resolved against now.
func ParseSlotKey(key string, now time.Time) (TimeSlot, error) {
	idx := strings.LastIndexByte(key, '_')
	if idx <= 0 || idx == len(key)-1 {
		return TimeSlot{}, fmt.Errorf("malformed slot key %q", key)
	}
	datePart, period := key[:idx], Period(key[idx+1:])
	if !ValidPeriod(period) {
		return TimeSlot{}, fmt.Errorf("slot key %q: unknown period %q", key, period)
	}
	if day, err := strconv.Atoi(datePart); err == nil {
		if day < 1 || day > 7 {
			return TimeSlot{}, fmt.Errorf("slot key %q: relative day out of range", key)
		}
		date := now.AddDate(0, 0, day-1).Format(SlotDateLayout)
		return TimeSlot{Date: date, Period: period}, nil
	}
	if _, err := time.Parse(SlotDateLayout, datePart); err != nil {
		return TimeSlot{}, fmt.Errorf("slot key %q: %w", key, err)
	}
	return TimeSlot{Date: datePart, Period: period}, nil
}

// SortSlots orders slots by date, then morning < afternoon < evening.
func SortSlots(slots []TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return periodOrder[slots[i].Period] < periodOrder[slots[j].Period]
	})
}
