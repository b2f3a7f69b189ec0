package models

// RecordHeader is the column order of the record export.
var RecordHeader = []string{"email", "fullName", "plotNumber", "phone"}

// NormalizedRecord is one (owner, plot) pair ready for import.
// PlotNumber is never empty; absent contact fields are "".
type NormalizedRecord struct {
	Email      string `json:"email" yaml:"email"`
	FullName   string `json:"fullName" yaml:"fullName"`
	PlotNumber string `json:"plotNumber" yaml:"plotNumber"`
	Phone      string `json:"phone" yaml:"phone"`
}

// Fields returns the record values in RecordHeader order.
func (r NormalizedRecord) Fields() []string {
	return []string{r.Email, r.FullName, r.PlotNumber, r.Phone}
}
