package models

import (
	"bytes"
	"strconv"
	"time"
)

// Role represents a user's role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
	RoleStudent Role = "student"
)

// AttendanceStatus represents a student's attendance for one day
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// BehaviorType distinguishes praise from warnings
type BehaviorType string

const (
	BehaviorPraise BehaviorType = "praise"
	BehaviorWarn   BehaviorType = "warn"
)

// QuestionType represents the format of a quiz question
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionSorting        QuestionType = "sorting"
	QuestionMatching       QuestionType = "matching"
)

// FlexInt is an int that tolerates sloppy remote data: JSON numbers,
// quoted numbers, null, and non-numeric garbage all decode (garbage to 0).
// The remote spreadsheet backend does not guarantee cell types.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = FlexInt(f)
	return nil
}

// User is an authenticated principal. Password round-trips only on
// registration payloads; the server never echoes it back.
type User struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Password        string `json:"password,omitempty"`
	FullName        string `json:"fullName"`
	Role            Role   `json:"role"`
	LinkedStudentID string `json:"linkedStudentId,omitempty"`
	LinkedClassID   string `json:"linkedClassId,omitempty"`
}

// ClassInfo is one homeroom class
type ClassInfo struct {
	ID              string `json:"id"`
	ClassName       string `json:"className"`
	SchoolYear      string `json:"schoolYear"`
	HomeroomTeacher string `json:"homeroomTeacher"`
}

// Student is one class member. XP and Level feed the reward game;
// Level is derived as XP/100+1 and recomputed on every award.
type Student struct {
	ID       string  `json:"id"`
	ClassID  string  `json:"classId"`
	FullName string  `json:"fullName"`
	DOB      string  `json:"dob,omitempty"`
	Gender   string  `json:"gender,omitempty"`
	XP       FlexInt `json:"xp"`
	Level    FlexInt `json:"level"`
}

// Parent is a guardian contact linked to a student
type Parent struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Attendance is one student's status on one day. Date is a plain
// "2006-01-02" string; remote data sometimes carries a time component
// which sync strips off.
type Attendance struct {
	ID        string           `json:"id"`
	ClassID   string           `json:"classId"`
	StudentID string           `json:"studentId"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
	Note      string           `json:"note,omitempty"`
}

// Behavior is one logged praise or warning entry
type Behavior struct {
	ID        string       `json:"id"`
	ClassID   string       `json:"classId"`
	StudentID string       `json:"studentId"`
	Date      string       `json:"date"`
	Type      BehaviorType `json:"type"`
	Title     string       `json:"title"`
	Points    FlexInt      `json:"points"`
	Note      string       `json:"note,omitempty"`
}

// Announcement is a class notice; pinned entries sort first
type Announcement struct {
	ID        string `json:"id"`
	ClassID   string `json:"classId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Pinned    bool   `json:"pinned"`
	CreatedAt string `json:"createdAt"`
}

// Document is a shared file reference for a class
type Document struct {
	ID         string `json:"id"`
	ClassID    string `json:"classId"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	UploadDate string `json:"uploadDate,omitempty"`
}

// Task is a class assignment
type Task struct {
	ID        string `json:"id"`
	ClassID   string `json:"classId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	DueDate   string `json:"dueDate,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// TaskReply is a parent/student response to a task; at most one per
// task+student pair (later replies overwrite)
type TaskReply struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	StudentID string `json:"studentId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// MessageThread is a parent-teacher conversation keyed by student.
// ThreadKey is the student ID; ParticipantsJSON is a display-name blob
// assembled when the thread is synthesized.
type MessageThread struct {
	ID               string `json:"id"`
	ThreadKey        string `json:"threadKey"`
	ParticipantsJSON string `json:"participantsJson"`
	LastMessageAt    string `json:"lastMessageAt"`
}

// Message is one entry in a thread
type Message struct {
	ID        string `json:"id"`
	ThreadID  string `json:"threadId"`
	FromRole  Role   `json:"fromRole"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// Question is one quiz-bank entry. Options carries the choice list for
// multiple choice, the scrambled items for sorting, and the pair list
// for matching; Answer holds the expected result in each format.
type Question struct {
	ID      string       `json:"id"`
	Type    QuestionType `json:"type"`
	Content string       `json:"content"`
	Options []string     `json:"options,omitempty"`
	Answer  string       `json:"answer,omitempty"`
	Points  FlexInt      `json:"points"`
}

// ReportContent holds the computed numbers for a class report
type ReportContent struct {
	AttendanceRate int      `json:"attendanceRate"`
	TotalAbsences  int      `json:"totalAbsences"`
	TotalLates     int      `json:"totalLates"`
	TopPraise      []string `json:"topPraise"`
	TopWarn        []string `json:"topWarn"`
	TaskReplyCount int      `json:"parentReplyCount"`
	TotalStudents  int      `json:"totalStudents"`
}

// Report is a locally computed weekly or monthly class summary
type Report struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Type          string        `json:"type"`
	StartDate     string        `json:"startDate"`
	EndDate       string        `json:"endDate"`
	GeneratedDate string        `json:"generatedDate"`
	Content       ReportContent `json:"content"`
}

// AttendanceItem is the per-student input to a bulk attendance save
type AttendanceItem struct {
	StudentID string           `json:"studentId"`
	Status    AttendanceStatus `json:"status"`
	Note      string           `json:"note,omitempty"`
}

// Snapshot is the full local copy of every remote collection plus the
// time of the last successful sync. Collections are never nil once a
// snapshot has passed through Normalize.
type Snapshot struct {
	Users         []User          `json:"users"`
	Classes       []ClassInfo     `json:"classes"`
	Students      []Student       `json:"students"`
	Parents       []Parent        `json:"parents"`
	Attendance    []Attendance    `json:"attendance"`
	Behaviors     []Behavior      `json:"behaviors"`
	Announcements []Announcement  `json:"announcements"`
	Documents     []Document      `json:"documents"`
	Tasks         []Task          `json:"tasks"`
	TaskReplies   []TaskReply     `json:"taskReplies"`
	Threads       []MessageThread `json:"threads"`
	Messages      []Message       `json:"messages"`
	Questions     []Question      `json:"questions"`
	LastSync      *time.Time      `json:"lastSync"`
}

// NewSnapshot returns an empty snapshot with all collections allocated
func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	s.Normalize()
	return s
}

// Normalize replaces nil collections with empty slices. Remote data and
// older cache formats may omit whole collections; readers rely on every
// collection being present.
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Classes == nil {
		s.Classes = []ClassInfo{}
	}
	if s.Students == nil {
		s.Students = []Student{}
	}
	if s.Parents == nil {
		s.Parents = []Parent{}
	}
	if s.Attendance == nil {
		s.Attendance = []Attendance{}
	}
	if s.Behaviors == nil {
		s.Behaviors = []Behavior{}
	}
	if s.Announcements == nil {
		s.Announcements = []Announcement{}
	}
	if s.Documents == nil {
		s.Documents = []Document{}
	}
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.TaskReplies == nil {
		s.TaskReplies = []TaskReply{}
	}
	if s.Threads == nil {
		s.Threads = []MessageThread{}
	}
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	if s.Questions == nil {
		s.Questions = []Question{}
	}
}
