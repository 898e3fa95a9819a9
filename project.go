package kickprof

// UnknownValue is the sentinel used when a project payload omits a text field.
const UnknownValue = "Unknown"

// ProjectSummary describes one launched project as reported by the creator's
// created-projects page.
type ProjectSummary struct {
	Title  string `json:"title"`
	Status string `json:"status"`

	// PercentFunded is floor(pledged/goal*100). It is nil when the funding
	// goal is zero or absent, and may exceed 100 for overfunded projects.
	PercentFunded *int `json:"percent_funded"`

	// Categories holds parent-category names in source order.
	Categories []string `json:"categories"`

	ProjectURL string `json:"project_url"`
}
