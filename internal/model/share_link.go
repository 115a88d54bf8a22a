package model

import "time"

// ShareLink grants link-based read access to a project. Token is assigned once
// at creation and never changes.
type ShareLink struct {
	ID            string
	ProjectID     string
	ProjectName   string
	Token         string
	IsActive      bool
	CreatedBy     *string
	CreatedByName string
	CreatedAt     time.Time
}
