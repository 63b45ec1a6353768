// AngelaMos | 2026
// dto.go

package member

import (
	"time"
)

type CreateMemberRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Role     string `json:"role"     validate:"required,oneof=member admin"`
	Username string `json:"username" validate:"required,min=3,max=50"`
}

type UpdateMemberRequest struct {
	Name  *string `json:"name,omitempty"  validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role  *string `json:"role,omitempty"  validate:"omitempty,oneof=member admin"`
}

func (r *UpdateMemberRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Role == nil
}

type MemberResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatedMemberResponse carries the generated password exactly once, at
// creation time. The plaintext is never stored and cannot be recovered
// afterwards.
type CreatedMemberResponse struct {
	MemberResponse
	Password string `json:"password"`
}

func ToMemberResponse(m *Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      m.Role,
		Username:  m.Username,
		CreatedAt: m.CreatedAt,
	}
}

func ToCreatedMemberResponse(m *Member, password string) CreatedMemberResponse {
	return CreatedMemberResponse{
		MemberResponse: ToMemberResponse(m),
		Password:       password,
	}
}

func ToMemberResponseList(members []Member) []MemberResponse {
	responses := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, ToMemberResponse(&m))
	}
	return responses
}
