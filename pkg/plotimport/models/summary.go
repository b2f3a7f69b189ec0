package models

// OwnerExample describes an email that appears on several records.
type OwnerExample struct {
	Email    string   `json:"email" yaml:"email"`
	FullName string   `json:"fullName" yaml:"fullName"`
	Plots    []string `json:"plots" yaml:"plots"`
}

// PlotDistribution summarizes how many plots each owner email holds.
type PlotDistribution struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Max    float64 `json:"max" yaml:"max"`
}

// Summary is the read-only report over a finished record list.
type Summary struct {
	TotalRecords    int                `json:"totalRecords" yaml:"totalRecords"`
	UniqueEmails    int                `json:"uniqueEmails" yaml:"uniqueEmails"`
	WithPhone       int                `json:"withPhone" yaml:"withPhone"`
	WithoutPhone    int                `json:"withoutPhone" yaml:"withoutPhone"`
	MultiPlotOwners int                `json:"multiPlotOwners" yaml:"multiPlotOwners"`
	Examples        []OwnerExample     `json:"examples,omitempty" yaml:"examples,omitempty"`
	PlotsPerOwner   PlotDistribution   `json:"plotsPerOwner" yaml:"plotsPerOwner"`
	Preview         []NormalizedRecord `json:"preview,omitempty" yaml:"preview,omitempty"`
	PreviewPhone    []NormalizedRecord `json:"previewWithPhone,omitempty" yaml:"previewWithPhone,omitempty"`
	PreviewNoPhone  []NormalizedRecord `json:"previewWithoutPhone,omitempty" yaml:"previewWithoutPhone,omitempty"`
}
