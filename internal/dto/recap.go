package dto

// RecapQuery selects a recap. Month applies to monthly recaps, Semester to
// semester recaps and charts.
type RecapQuery struct {
	Class    string `form:"kelas"`
	Month    int    `form:"bulan"`
	Year     int    `form:"tahun"`
	Semester int    `form:"semester"`
}

// ExportQuery selects a synchronous download.
type ExportQuery struct {
	RecapQuery
	Format   string `form:"format"`
	Type     string `form:"type"`
	SignDate string `form:"tanggalTtd"`
}
