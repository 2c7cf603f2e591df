package models

// TeacherStatusHomeroom is the teacher status under which every weekday is a
// teaching day for every class.
const TeacherStatusHomeroom = "Guru Kelas"

// SchoolProfile holds the school and signatory details printed on exports.
// Signatures are data URLs captured by the client.
type SchoolProfile struct {
	PrincipalName      Text `json:"namaKepsek"`
	PrincipalNIP       Text `json:"nipKepsek"`
	PrincipalSignature Text `json:"ttdKepsek"`
	TeacherName        Text `json:"namaGuru"`
	TeacherNIP         Text `json:"nipGuru"`
	TeacherSignature   Text `json:"ttdGuru"`
	City               Text `json:"namaKota"`
	TeacherStatus      Text `json:"statusGuru"`
	SchoolName         Text `json:"namaSekolah"`
}

// IsHomeroomTeacher reports whether the teacher status disables
// schedule-based day exclusion. A missing status counts as homeroom.
func (p *SchoolProfile) IsHomeroomTeacher() bool {
	return p == nil || p.TeacherStatus == "" || p.TeacherStatus == TeacherStatusHomeroom
}

// TeacherStatusLabel returns the teacher status, defaulting to homeroom.
func (p *SchoolProfile) TeacherStatusLabel() string {
	if p == nil || p.TeacherStatus == "" {
		return TeacherStatusHomeroom
	}
	return p.TeacherStatus.String()
}
