package store

import (
	"strconv"

	"school-erp-service/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// Starter tenants provisioned on first run or after a corrupt-snapshot reset.
// The demo credentials match the original deployment's defaults.
var starterSchools = []struct {
	name     string
	address  string
	phone    string
	loginID  string
	password string
}{
	{"Springfield Elementary", "123 Education Lane, Springfield", "555-123-4567", "springfield_elem", "pass123"},
	{"North Central High", "456 High St, Northville", "555-234-5678", "north_central_high", "password123"},
	{"Oak Valley Academy", "789 Academy Rd, Oak Valley", "555-345-6789", "oak_valley_acad", "password123"},
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// seedSnapshot builds a fresh snapshot: the operator credential, the starter
// schools and one bundle per school (demo data when enabled, otherwise the
// empty bundle). No session is active after a seed.
func seedSnapshot(seed SeedOptions) (*model.Snapshot, error) {
	superHash, err := hashPassword(seed.SuperPassword)
	if err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		SuperAdmin: model.SuperAdmin{Username: seed.SuperUsername, Password: superHash},
		Schools:    []model.School{},
		SchoolData: map[string]*model.SchoolData{},
	}

	for i, s := range starterSchools {
		hash, err := hashPassword(s.password)
		if err != nil {
			return nil, err
		}
		id := uint(i + 1)
		snap.Schools = append(snap.Schools, model.School{
			ID:       id,
			Name:     s.name,
			Address:  s.address,
			Phone:    s.phone,
			LoginID:  s.loginID,
			Password: hash,
		})
		if seed.DemoData {
			snap.SchoolData[dataKey(id)] = demoSchoolData(s.name, s.address)
		} else {
			snap.SchoolData[dataKey(id)] = model.NewSchoolData(s.name, s.address)
		}
	}

	snap.NextSchoolID = uint(len(starterSchools)) + 1
	return snap, nil
}

func dataKey(schoolID uint) string {
	return strconv.FormatUint(uint64(schoolID), 10)
}

// demoSchoolData generates a small consistent data set so a freshly seeded
// school is immediately browsable.
func demoSchoolData(name, address string) *model.SchoolData {
	d := model.NewSchoolData(name, address)

	d.Teachers = []model.Teacher{
		{ID: 1, Name: "Mr. John Doe"},
		{ID: 2, Name: "Ms. Jane Smith"},
		{ID: 3, Name: "Mrs. Emily White"},
		{ID: 4, Name: "Mr. Robert Brown"},
	}

	d.Classes = []model.ClassInfo{
		{ID: 1, Name: "Class 10", Sections: []string{"A", "B"}, TeacherID: 1, TeacherName: "Mr. John Doe", StudentCount: 2, TuitionFee: 400},
		{ID: 2, Name: "Class 9", Sections: []string{"A", "B"}, TeacherID: 2, TeacherName: "Ms. Jane Smith", StudentCount: 1, TuitionFee: 350},
	}

	d.Students = []model.Student{
		{ID: 1, StudentID: "S001", Name: "Alice Johnson", Class: "10", Section: "A", ClassRoll: 1, GuardianName: "John Johnson", GuardianPhone: "123-456-7890", ParentName: "John Johnson", ParentPhone: "123-456-7890", DOB: "2008-05-15", Address: "123 Maple St", AvatarURL: "https://picsum.photos/seed/alice/100/100", BirthCertificateNo: "BCN12345", MonthlyScholarship: 50},
		{ID: 2, StudentID: "S002", Name: "Bob Smith", Class: "10", Section: "A", ClassRoll: 2, GuardianName: "Robert Smith", GuardianPhone: "123-456-7891", ParentName: "Robert Smith", ParentPhone: "123-456-7891", DOB: "2008-07-22", Address: "456 Oak Ave", AvatarURL: "https://picsum.photos/seed/bob/100/100", BirthCertificateNo: "BCN67890"},
		{ID: 3, StudentID: "S003", Name: "Charlie Brown", Class: "9", Section: "B", ClassRoll: 5, GuardianName: "Charles Brown", GuardianPhone: "123-456-7892", ParentName: "Charles Brown", ParentPhone: "123-456-7892", DOB: "2009-02-10", Address: "789 Pine Ln", AvatarURL: "https://picsum.photos/seed/charlie/100/100", BirthCertificateNo: "BCN54321"},
	}

	d.Staff = []model.Staff{
		{ID: 1, StaffID: "T001", Name: "Dr. Evelyn Reed", NID: "1985123456789", Role: model.RoleHeadTeacher, BasicSalary: 5000, AvatarURL: "https://picsum.photos/seed/evelyn/100/100"},
		{ID: 2, StaffID: "T002", Name: "Mr. Samuel Chen", NID: "1990010112345", Role: model.RoleTeacher, BasicSalary: 3500, AvatarURL: "https://picsum.photos/seed/samuel/100/100"},
		{ID: 3, StaffID: "A001", Name: "Ms. Clara Oswald", NID: "1992053098765", Role: model.RoleAccountant, BasicSalary: 3000, AvatarURL: "https://picsum.photos/seed/clara/100/100"},
	}

	d.Attendance = []model.AttendanceRecord{
		{ID: 1, StudentID: 1, StudentName: "Alice Johnson", Date: "2023-10-26", Status: model.AttendancePresent, Class: "10", Section: "A"},
		{ID: 2, StudentID: 2, StudentName: "Bob Smith", Date: "2023-10-26", Status: model.AttendanceAbsent, Class: "10", Section: "A"},
		{ID: 3, StudentID: 3, StudentName: "Charlie Brown", Date: "2023-10-26", Status: model.AttendancePresent, Class: "9", Section: "B"},
	}

	examID := uint(1)
	d.Fees = []model.Fee{
		{ID: 1, StudentID: 1, StudentName: "Alice Johnson", Amount: 400, Month: "September", Status: model.FeePaid, PaidDate: "2023-09-05", DueDate: "2023-09-10", Type: "Tuition Fee"},
		{ID: 2, StudentID: 2, StudentName: "Bob Smith", Amount: 25, Status: model.FeePaid, PaidDate: "2023-11-01", DueDate: "2023-11-10", Type: "Exam Fee", ExamID: &examID},
	}

	d.StaffAttendance = []model.StaffAttendanceRecord{
		{ID: 1, StaffID: 1, StaffName: "Dr. Evelyn Reed", Date: "2023-10-27", Status: model.StaffPresent},
		{ID: 2, StaffID: 2, StaffName: "Mr. Samuel Chen", Date: "2023-10-27", Status: model.StaffOnLeave},
	}

	d.FeeStructures = []model.FeeStructure{
		{ID: 1, Name: "Tuition Fee", Description: "Monthly fee for academic classes.", Amount: 400},
		{ID: 2, Name: "Library Fee", Description: "Annual fee for library access and resources.", Amount: 50},
	}

	d.SalaryPayments = []model.SalaryPayment{
		{ID: 1, StaffID: 1, StaffName: "Dr. Evelyn Reed", Month: "September", Year: 2023, BasicSalary: 5000, FinalAmount: 5000, PaymentDate: "2023-10-01"},
	}

	d.Expenses = []model.Expense{
		{ID: 1, Date: "2023-10-15", Category: model.ExpenseUtilities, Description: "Electricity Bill", Amount: 500},
	}

	d.Income = []model.Income{
		{ID: 1, Date: "2023-10-05", Source: "Annual Fundraiser Event", Amount: 2500},
	}

	d.Exams = []model.Exam{
		{ID: 1, Name: "Mid-term Examination", AcademicYear: "2023-2024", StartDate: "2023-11-15", EndDate: "2023-11-25", ExamFee: 25, Subjects: []model.ExamSubject{{SubjectName: "Mathematics", MaxMarks: 100}, {SubjectName: "English", MaxMarks: 100}}},
		{ID: 2, Name: "Final Examination", AcademicYear: "2023-2024", StartDate: "2024-03-10", EndDate: "2024-03-22", ExamFee: 50, Subjects: []model.ExamSubject{{SubjectName: "Physics", MaxMarks: 100}}},
	}

	d.ExamSchedules = []model.ExamSchedule{
		{ID: 1, ExamID: 1, ClassID: 1, Subject: "Mathematics", Date: "2023-11-15", StartTime: "09:00", EndTime: "12:00", MaxMarks: 100},
		{ID: 2, ExamID: 1, ClassID: 2, Subject: "English", Date: "2023-11-16", StartTime: "09:00", EndTime: "12:00", MaxMarks: 100},
	}

	d.ExamResults = []model.ExamResult{
		{ID: 1, ExamID: 1, StudentID: 1, ScheduleID: 1, MarksObtained: 85, Grade: "A"},
	}

	d.AcademicSessions = []model.AcademicSession{
		{ID: 1, Name: "2023-2024", StartDate: "2023-08-01", EndDate: "2024-05-31", IsActive: true},
	}

	return d
}
