package model

import "time"

// Project is the unit of ownership. Every other entity hangs off a project and
// is removed with it.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// OwnedBy reports whether userID created the project.
func (p *Project) OwnedBy(userID string) bool {
	return p != nil && userID != "" && p.CreatedBy == userID
}

// ProjectFile is an attachment stored in object storage.
type ProjectFile struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project"`
	Name        string    `json:"name"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectNote is free-text content attached to a project. Content may be empty.
type ProjectNote struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is a message left on a project by a user.
type Comment struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project"`
	UserID    string    `json:"user"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
	UpdatedAt time.Time `json:"updated_at"`
}
