// Package survey reads the wide, positionally mapped survey sheet.
package survey

import "emisi.dev/backend/internal/constant"

// Metadata columns, in sheet order.
const (
	ColTimestamp = iota
	ColName
	ColProgram
	ColContact
	ColTransportMode
	ColDistanceRange
	ColFuelType
	ColParking
	ColDeviceList
	ColPhoneUsage
	ColLaptopUsage
	ColTabletUsage
	ColEatingPlace

	metadataColumns
)

const (
	// SlotsPerDay is the number of activity cells for each day block.
	SlotsPerDay = 10

	// dayBlockWidth is the activity cells followed by class_location and other_location.
	dayBlockWidth = SlotsPerDay + 2

	classLocationOffset = SlotsPerDay
	otherLocationOffset = SlotsPerDay + 1
)

var (
	firstDayColumn = metadataColumns

	// ColCohortYear and ColDistrict trail the seven day blocks.
	ColCohortYear = firstDayColumn + len(constant.Weekdays)*dayBlockWidth
	ColDistrict   = ColCohortYear + 1

	// ColumnCount is the exact width every row must have.
	ColumnCount = ColDistrict + 1
)

// DayOffset is the column index where the block of the dayIdx-th weekday starts.
func DayOffset(dayIdx int) int {
	return firstDayColumn + dayIdx*dayBlockWidth
}
