package model

// Record types for the per-school collections. Field names and JSON keys
// follow the persisted snapshot schema.

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
)

type FeeStatus string

const (
	FeePaid   FeeStatus = "Paid"
	FeeUnpaid FeeStatus = "Unpaid"
	FeeDue    FeeStatus = "Due"
)

type StaffRole string

const (
	RoleTeacher     StaffRole = "Teacher"
	RoleHeadTeacher StaffRole = "Head Teacher"
	RoleAccountant  StaffRole = "Accountant"
	RoleCleaner     StaffRole = "Cleaner"
	RoleWatchman    StaffRole = "Watchman"
	RoleAdmin       StaffRole = "Admin"
)

type StaffAttendanceStatus string

const (
	StaffPresent StaffAttendanceStatus = "Present"
	StaffAbsent  StaffAttendanceStatus = "Absent"
	StaffOnLeave StaffAttendanceStatus = "On Leave"
)

type ExpenseCategory string

const (
	ExpenseUtilities   ExpenseCategory = "Utilities"
	ExpenseSupplies    ExpenseCategory = "Office Supplies"
	ExpenseMaintenance ExpenseCategory = "Maintenance & Repairs"
	ExpenseMarketing   ExpenseCategory = "Marketing"
	ExpenseOther       ExpenseCategory = "Other"
)

type Student struct {
	ID                 uint   `json:"id"`
	StudentID          string `json:"studentId"`
	Name               string `json:"name"`
	Class              string `json:"class"`
	Section            string `json:"section"`
	ClassRoll          int    `json:"classRoll"`
	GuardianName       string `json:"guardianName"`
	GuardianPhone      string `json:"guardianPhone"`
	ParentName         string `json:"parentName"`
	ParentPhone        string `json:"parentPhone"`
	DOB                string `json:"dob"`
	Address            string `json:"address"`
	AvatarURL          string `json:"avatarUrl"`
	BirthCertificateNo string `json:"birthCertificateNo"`
	MonthlyScholarship int    `json:"monthlyScholarship"`
}

type AttendanceRecord struct {
	ID          uint             `json:"id"`
	StudentID   uint             `json:"studentId"`
	StudentName string           `json:"studentName"`
	Date        string           `json:"date"`
	Status      AttendanceStatus `json:"status"`
	Class       string           `json:"class"`
	Section     string           `json:"section"`
}

type Fee struct {
	ID            uint      `json:"id"`
	StudentID     uint      `json:"studentId"`
	StudentName   string    `json:"studentName"`
	Amount        float64   `json:"amount"`
	Month         string    `json:"month,omitempty"`
	Status        FeeStatus `json:"status"`
	PaidDate      string    `json:"paidDate,omitempty"`
	DueDate       string    `json:"dueDate"`
	Type          string    `json:"type"`
	ExamID        *uint     `json:"examId,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

type Teacher struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ClassInfo struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Sections     []string `json:"sections"`
	TeacherID    uint     `json:"teacherId"`
	TeacherName  string   `json:"teacherName"`
	StudentCount int      `json:"studentCount"`
	TuitionFee   float64  `json:"tuitionFee"`
}

type Staff struct {
	ID          uint      `json:"id"`
	StaffID     string    `json:"staffId"`
	Name        string    `json:"name"`
	NID         string    `json:"nid"`
	Role        StaffRole `json:"role"`
	BasicSalary float64   `json:"basicSalary"`
	AvatarURL   string    `json:"avatarUrl"`
}

type StaffAttendanceRecord struct {
	ID        uint                  `json:"id"`
	StaffID   uint                  `json:"staffId"`
	StaffName string                `json:"staffName"`
	Date      string                `json:"date"`
	Status    StaffAttendanceStatus `json:"status"`
}

type FeeStructure struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type SalaryPayment struct {
	ID              uint    `json:"id"`
	StaffID         uint    `json:"staffId"`
	StaffName       string  `json:"staffName"`
	Month           string  `json:"month"`
	Year            int     `json:"year"`
	BasicSalary     float64 `json:"basicSalary"`
	BonusAmount     float64 `json:"bonusAmount,omitempty"`
	BonusReason     string  `json:"bonusReason,omitempty"`
	DeductionAmount float64 `json:"deductionAmount,omitempty"`
	DeductionReason string  `json:"deductionReason,omitempty"`
	FinalAmount     float64 `json:"finalAmount"`
	PaymentDate     string  `json:"paymentDate"`
	Notes           string  `json:"notes,omitempty"`
}

type Expense struct {
	ID          uint            `json:"id"`
	Date        string          `json:"date"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Notes       string          `json:"notes,omitempty"`
}

type Income struct {
	ID     uint    `json:"id"`
	Date   string  `json:"date"`
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes,omitempty"`
}

type ExamSubject struct {
	SubjectName string `json:"subjectName"`
	MaxMarks    int    `json:"maxMarks"`
}

type Exam struct {
	ID           uint          `json:"id"`
	Name         string        `json:"name"`
	AcademicYear string        `json:"academicYear"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	ExamFee      float64       `json:"examFee,omitempty"`
	Subjects     []ExamSubject `json:"subjects"`
}

type ExamSchedule struct {
	ID        uint   `json:"id"`
	ExamID    uint   `json:"examId"`
	ClassID   uint   `json:"classId"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	MaxMarks  int    `json:"maxMarks"`
}

type ExamResult struct {
	ID            uint   `json:"id"`
	ExamID        uint   `json:"examId"`
	StudentID     uint   `json:"studentId"`
	ScheduleID    uint   `json:"scheduleId"`
	MarksObtained int    `json:"marksObtained"`
	Grade         string `json:"grade,omitempty"`
	Comments      string `json:"comments,omitempty"`
}

type AcademicSession struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsActive  bool   `json:"isActive"`
}
