package models

import "time"

// Member types. These are data labels on team members, not auth roles.
const (
	MemberTypePI         = "pi"
	MemberTypeResearcher = "researcher"
	MemberTypeGraduate   = "graduate"
)

// ValidMemberType reports whether t is one of the known member types.
func ValidMemberType(t string) bool {
	switch t {
	case MemberTypePI, MemberTypeResearcher, MemberTypeGraduate:
		return true
	}
	return false
}

// Member is a person on the team page: PI, researcher, or graduate.
type Member struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	MemberType  string     `json:"memberType"`
	Title       string     `json:"title"`
	Email       string     `json:"email"`
	AvatarKey   string     `json:"avatarKey"`
	Bio         string     `json:"bio"`
	JoinedAt    *time.Time `json:"joinedAt,omitempty"`
	GraduatedAt *time.Time `json:"graduatedAt,omitempty"`
	CreatedBy   int64      `json:"createdBy"`
	UpdatedBy   int64      `json:"updatedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
