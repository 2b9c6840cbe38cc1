package models

type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// Weekdays lists the valid days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (d Weekday) String() string {
	return string(d)
}

func (d Weekday) DisplayName() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return string(d)
}

func IsValidWeekday(day string) bool {
	_, ok := weekdayNames[Weekday(day)]
	return ok
}

type Schedule struct {
	ID          int64   `json:"id" db:"id"`
	CourseID    int64   `json:"course_id" db:"course_id"`
	CourseTitle string  `json:"course_title" db:"course_title"`
	DayOfWeek   Weekday `json:"day_of_week" db:"day_of_week"`
	DayName     string  `json:"day_name" db:"-"`
	StartTime   string  `json:"start_time" db:"start_time"`
	EndTime     string  `json:"end_time" db:"end_time"`
	Classroom   string  `json:"classroom" db:"classroom"`
	IsActive    bool    `json:"is_active" db:"is_active"`
}
