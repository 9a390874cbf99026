package models

import "time"

// Award is a prize or honor received by the lab or its members.
type Award struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Recipient string     `json:"recipient"`
	Level     string     `json:"level"`
	AwardedAt *time.Time `json:"awardedAt,omitempty"`
	CreatedBy int64      `json:"createdBy"`
	UpdatedBy int64      `json:"updatedBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
