package handler

import "github.com/99minutos/memo-service/internal/core/domain"

type signupRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// memoRequest is shared by create and update. A missing field stays nil.
type memoRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (r memoRequest) patch() domain.MemoPatch {
	return domain.MemoPatch{Title: r.Title, Content: r.Content}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// memosPage feeds the memos.html template.
type memosPage struct {
	Account *domain.Account
	Memos   []domain.Memo
}
