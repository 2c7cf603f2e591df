package models

import "strings"

// Sex codes stored on student records.
const (
	SexMale   = "L"
	SexFemale = "P"
)

// AllClasses is the class filter value meaning "every class".
const AllClasses = "Semua"

// Student is a row of the student master sheet.
type Student struct {
	ID    Text `json:"id"`
	Name  Text `json:"name"`
	NISN  Text `json:"nisn"`
	Class Text `json:"kelas"`
	Sex   Text `json:"jenisKelamin"`
}

// SexGroup classifies the student's sex code, accepting both the short codes
// and the spelled-out labels. Unknown values return "".
func (s Student) SexGroup() string {
	switch strings.ToUpper(s.Sex.String()) {
	case SexMale, "LAKI-LAKI":
		return SexMale
	case SexFemale, "PEREMPUAN":
		return SexFemale
	default:
		return ""
	}
}

// InClass reports whether the student belongs to class, treating
// AllClasses and "" as a wildcard.
func (s Student) InClass(class string) bool {
	return IsAllClasses(class) || s.Class.String() == strings.TrimSpace(class)
}

// IsAllClasses reports whether class selects every class.
func IsAllClasses(class string) bool {
	class = strings.TrimSpace(class)
	return class == "" || class == AllClasses
}

// GenderSummary counts students per sex group.
type GenderSummary struct {
	Male   int `json:"L"`
	Female int `json:"P"`
	Total  int `json:"total"`
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	Class    string
	Search   string
	Page     int
	PageSize int
}

// Pagination describes a page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// StudentInput is the writable part of a student record.
type StudentInput struct {
	NISN  string `json:"nisn"`
	Name  string `json:"nama"`
	Class string `json:"kelas"`
	Sex   string `json:"jenisKelamin"`
}
