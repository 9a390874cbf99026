package models

import "time"

// Publication is a paper or article produced by the lab. PDFKey refers to an
// object in the uploads bucket.
type Publication struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Authors   string    `json:"authors"`
	Venue     string    `json:"venue"`
	Year      int       `json:"year"`
	DOI       string    `json:"doi"`
	PDFKey    string    `json:"pdfKey"`
	CreatedBy int64     `json:"createdBy"`
	UpdatedBy int64     `json:"updatedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
