package admin

import "stadiumbooking/internal/domain"

type BanUserRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type UserListFilter struct {
	Role   string `form:"role" binding:"omitempty,oneof=user owner admin"`
	Banned *bool  `form:"banned"`
	Query  string `form:"q"` // name/email contains
}

type UserListResponse struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}
