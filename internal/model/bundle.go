package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CollectionKey names one of the fixed record collections inside a school's
// bundle. The set of keys is known at compile time; anything else is rejected
// on write and reads as empty.
type CollectionKey string

const (
	KeyStudents         CollectionKey = "students"
	KeyAttendance       CollectionKey = "attendance"
	KeyFees             CollectionKey = "fees"
	KeyTeachers         CollectionKey = "teachers"
	KeyClasses          CollectionKey = "classes"
	KeyStaff            CollectionKey = "staff"
	KeyStaffAttendance  CollectionKey = "staffAttendance"
	KeyFeeStructures    CollectionKey = "feeStructures"
	KeySalaryPayments   CollectionKey = "salaryPayments"
	KeyExpenses         CollectionKey = "expenses"
	KeyIncome           CollectionKey = "income"
	KeyExams            CollectionKey = "exams"
	KeyExamSchedules    CollectionKey = "examSchedules"
	KeyExamResults      CollectionKey = "examResults"
	KeyAcademicSessions CollectionKey = "academicSessions"
)

// CollectionKeys lists every valid collection key.
var CollectionKeys = []CollectionKey{
	KeyStudents, KeyAttendance, KeyFees, KeyTeachers, KeyClasses,
	KeyStaff, KeyStaffAttendance, KeyFeeStructures, KeySalaryPayments,
	KeyExpenses, KeyIncome, KeyExams, KeyExamSchedules, KeyExamResults,
	KeyAcademicSessions,
}

// ValidCollectionKey reports whether key names a known collection.
func ValidCollectionKey(key CollectionKey) bool {
	for _, k := range CollectionKeys {
		if k == key {
			return true
		}
	}
	return false
}

// EmptyCollection is the canonical serialized form of an absent or empty
// collection.
var EmptyCollection = json.RawMessage("[]")

// SchoolData is the full record bundle for one school: a singleton profile
// plus one ordered collection per key.
type SchoolData struct {
	SchoolProfile    SchoolProfile           `json:"schoolProfile"`
	Students         []Student               `json:"students"`
	Attendance       []AttendanceRecord      `json:"attendance"`
	Fees             []Fee                   `json:"fees"`
	Teachers         []Teacher               `json:"teachers"`
	Classes          []ClassInfo             `json:"classes"`
	Staff            []Staff                 `json:"staff"`
	StaffAttendance  []StaffAttendanceRecord `json:"staffAttendance"`
	FeeStructures    []FeeStructure          `json:"feeStructures"`
	SalaryPayments   []SalaryPayment         `json:"salaryPayments"`
	Expenses         []Expense               `json:"expenses"`
	Income           []Income                `json:"income"`
	Exams            []Exam                  `json:"exams"`
	ExamSchedules    []ExamSchedule          `json:"examSchedules"`
	ExamResults      []ExamResult            `json:"examResults"`
	AcademicSessions []AcademicSession       `json:"academicSessions"`
}

// NewSchoolData returns an empty bundle whose profile carries the given name
// and address. Blank values fall back to placeholder defaults shown until the
// school fills in its settings.
func NewSchoolData(name, address string) *SchoolData {
	if name == "" {
		name = "School ERP"
	}
	if address == "" {
		address = "Please set in settings"
	}
	return &SchoolData{
		SchoolProfile:    SchoolProfile{Name: name, Address: address},
		Students:         []Student{},
		Attendance:       []AttendanceRecord{},
		Fees:             []Fee{},
		Teachers:         []Teacher{},
		Classes:          []ClassInfo{},
		Staff:            []Staff{},
		StaffAttendance:  []StaffAttendanceRecord{},
		FeeStructures:    []FeeStructure{},
		SalaryPayments:   []SalaryPayment{},
		Expenses:         []Expense{},
		Income:           []Income{},
		Exams:            []Exam{},
		ExamSchedules:    []ExamSchedule{},
		ExamResults:      []ExamResult{},
		AcademicSessions: []AcademicSession{},
	}
}

// Collection serializes the named collection. The second return is false for
// an unknown key; callers treating reads as infallible can use the empty
// collection in that case.
func (d *SchoolData) Collection(key CollectionKey) (json.RawMessage, bool) {
	ptr := d.collectionPtr(key)
	if ptr == nil {
		return EmptyCollection, false
	}
	b, err := json.Marshal(ptr)
	if err != nil || bytes.Equal(b, []byte("null")) {
		return EmptyCollection, true
	}
	return b, true
}

// SetCollection replaces the named collection wholesale with the decoded
// records. The bundle is untouched when the key is unknown or the payload
// does not decode as the collection's record type.
func (d *SchoolData) SetCollection(key CollectionKey, records json.RawMessage) error {
	ptr := d.collectionPtr(key)
	if ptr == nil {
		return fmt.Errorf("unknown collection %q", key)
	}
	switch p := ptr.(type) {
	case *[]Student:
		return replace(records, p)
	case *[]AttendanceRecord:
		return replace(records, p)
	case *[]Fee:
		return replace(records, p)
	case *[]Teacher:
		return replace(records, p)
	case *[]ClassInfo:
		return replace(records, p)
	case *[]Staff:
		return replace(records, p)
	case *[]StaffAttendanceRecord:
		return replace(records, p)
	case *[]FeeStructure:
		return replace(records, p)
	case *[]SalaryPayment:
		return replace(records, p)
	case *[]Expense:
		return replace(records, p)
	case *[]Income:
		return replace(records, p)
	case *[]Exam:
		return replace(records, p)
	case *[]ExamSchedule:
		return replace(records, p)
	case *[]ExamResult:
		return replace(records, p)
	case *[]AcademicSession:
		return replace(records, p)
	}
	return fmt.Errorf("unknown collection %q", key)
}

// replace decodes into a fresh slice before assigning, so a malformed payload
// cannot leave the collection half-written.
func replace[T any](records json.RawMessage, dst *[]T) error {
	var v []T
	if err := json.Unmarshal(records, &v); err != nil {
		return fmt.Errorf("decode collection: %w", err)
	}
	if v == nil {
		v = []T{}
	}
	*dst = v
	return nil
}

func (d *SchoolData) collectionPtr(key CollectionKey) interface{} {
	switch key {
	case KeyStudents:
		return &d.Students
	case KeyAttendance:
		return &d.Attendance
	case KeyFees:
		return &d.Fees
	case KeyTeachers:
		return &d.Teachers
	case KeyClasses:
		return &d.Classes
	case KeyStaff:
		return &d.Staff
	case KeyStaffAttendance:
		return &d.StaffAttendance
	case KeyFeeStructures:
		return &d.FeeStructures
	case KeySalaryPayments:
		return &d.SalaryPayments
	case KeyExpenses:
		return &d.Expenses
	case KeyIncome:
		return &d.Income
	case KeyExams:
		return &d.Exams
	case KeyExamSchedules:
		return &d.ExamSchedules
	case KeyExamResults:
		return &d.ExamResults
	case KeyAcademicSessions:
		return &d.AcademicSessions
	}
	return nil
}

// Snapshot is the whole persisted state: the operator credential, the school
// directory, every school's bundle keyed by school id, the persisted active
// session marker and the monotonic id counter.
type Snapshot struct {
	SuperAdmin     SuperAdmin             `json:"superAdmin"`
	Schools        []School               `json:"schools"`
	SchoolData     map[string]*SchoolData `json:"schoolData"`
	ActiveSchoolID *uint                  `json:"activeSchoolId"`
	NextSchoolID   uint                   `json:"nextSchoolId"`
}

// Valid reports whether the decoded snapshot is structurally usable. A
// snapshot failing this check is discarded and reseeded.
func (s *Snapshot) Valid() bool {
	return s != nil && s.Schools != nil && s.SchoolData != nil && s.SuperAdmin.Username != ""
}
