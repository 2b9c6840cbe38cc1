package models

const DefaultTopStudents = 5

type TopStudent struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Email    string  `json:"email" db:"email"`
	AvgGrade float64 `json:"avg_grade" db:"avg_grade"`
	Band     Band    `json:"band" db:"-"`
}

type CourseStatistic struct {
	ID           int64    `json:"id" db:"id"`
	Title        string   `json:"title" db:"title"`
	Code         string   `json:"code" db:"code"`
	TeacherName  *string  `json:"teacher_name" db:"teacher_name"`
	StudentCount int      `json:"student_count" db:"student_count"`
	AvgGrade     *float64 `json:"avg_grade" db:"avg_grade"`
	Band         Band     `json:"band" db:"-"`
}

type Totals struct {
	Students int `json:"total_students" db:"total_students"`
	Courses  int `json:"total_courses" db:"total_courses"`
	Teachers int `json:"total_teachers" db:"total_teachers"`
}

type Dashboard struct {
	Totals
	AvgScore    float64           `json:"avg_score"`
	TopStudents []TopStudent      `json:"top_students"`
	CourseStats []CourseStatistic `json:"courses_stats"`
}
