package models

import "time"

// Tool is a piece of software published by the lab.
type Tool struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	RepoURL     string    `json:"repoUrl"`
	HomepageURL string    `json:"homepageUrl"`
	IconKey     string    `json:"iconKey"`
	CreatedBy   int64     `json:"createdBy"`
	UpdatedBy   int64     `json:"updatedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
