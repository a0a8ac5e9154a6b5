package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/vinted-clone/marketplace-backend/internal/services"
)

type signupForm struct {
	Email    string `schema:"email"`
	Username string `schema:"username"`
	Password string `schema:"password"`
	Phone    string `schema:"phone"`
}

type loginForm struct {
	Email    string `schema:"email"`
	Password string `schema:"password"`
}

// Signup handles POST /user/signup. Unexpected failures answer 404.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var form signupForm
	if err := h.decodeForm(w, r, &form); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	avatar, err := formFile(r, "avatar")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	var avatarReader io.Reader
	if avatar != nil {
		defer avatar.Close()
		avatarReader = avatar
	}

	res, err := h.users.Signup(r.Context(), services.SignupInput{
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
		Phone:    form.Phone,
		Avatar:   avatarReader,
	})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, verr.Status, errorResponse{Error: verr.Message})
			return
		}
		writeError(w, r, http.StatusNotFound, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Login handles POST /user/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := h.decodeForm(w, r, &form); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := h.users.Login(r.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, services.ErrUnknownEmail), errors.Is(err, services.ErrWrongCredentials):
		writeError(w, r, http.StatusBadRequest, err)
		return
	case err != nil:
		writeError(w, r, http.StatusNotFound, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
