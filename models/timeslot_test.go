package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotKeyDated(t *testing.T) {
	now := time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)

	slot, err := ParseSlotKey("2025-08-31_morning", now)
	require.NoError(t, err)
	assert.Equal(t, TimeSlot{Date: "2025-08-31", Period: PeriodMorning}, slot)
	assert.Equal(t, "2025-08-31_morning", slot.Key())
}

func TestParseSlotKeyLegacyRelativeDay(t *testing.T) {
	now := time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)

	// Day 1 is today, day 3 is two days out.
	slot, err := ParseSlotKey("1_evening", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-25", slot.Date)

	slot, err = ParseSlotKey("3_morning", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-27", slot.Date)
}

func TestParseSlotKeyRejectsMalformed(t *testing.T) {
	now := time.Now()
	for _, key := range []string{
		"",
		"morning",
		"_morning",
		"2025-08-31_",
		"2025-08-31_brunch",
		"0_morning",
		"8_morning",
		"31-08-2025_morning",
	} {
		_, err := ParseSlotKey(key, now)
		assert.Error(t, err, "key %q", key)
	}
}

func TestSortSlots(t *testing.T) {
	slots := []TimeSlot{
		{Date: "2025-08-26", Period: PeriodMorning},
		{Date: "2025-08-25", Period: PeriodEvening},
		{Date: "2025-08-25", Period: PeriodMorning},
		{Date: "2025-08-25", Period: PeriodAfternoon},
	}

	SortSlots(slots)

	assert.Equal(t, []TimeSlot{
		{Date: "2025-08-25", Period: PeriodMorning},
		{Date: "2025-08-25", Period: PeriodAfternoon},
		{Date: "2025-08-25", Period: PeriodEvening},
		{Date: "2025-08-26", Period: PeriodMorning},
	}, slots)
}
