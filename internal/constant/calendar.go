package constant

const (
	Monday    = "Monday"
	Tuesday   = "Tuesday"
	Wednesday = "Wednesday"
	Thursday  = "Thursday"
	Friday    = "Friday"
	Saturday  = "Saturday"
	Sunday    = "Sunday"

	DaysSeparator = ", "
)

// Weekdays lists the days in the order their column blocks appear in the survey sheet.
// The slice must not be modified.
var Weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Timeslots are the ten 2-hour buckets respondents fill in for every day.
// The slice must not be modified.
var Timeslots = []string{
	"04.00-06.00",
	"06.00-08.00",
	"08.00-10.00",
	"10.00-12.00",
	"12.00-14.00",
	"14.00-16.00",
	"16.00-18.00",
	"18.00-20.00",
	"20.00-22.00",
	"22.00-24.00",
}

var weekdaySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Weekdays))
	for _, d := range Weekdays {
		m[d] = struct{}{}
	}
	return m
}()

func IsWeekday(s string) bool {
	_, ok := weekdaySet[s]
	return ok
}
