package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/Expendas/internal/user"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}
	respondJSON(w, status, payload)
}

type mockUserService struct {
	users map[string]*user.User
	err   error
}

func newMockUserService(users ...*user.User) *mockUserService {
	m := &mockUserService{users: make(map[string]*user.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserService) Register(_ context.Context, email, login, _ string) (*user.User, error) {
	u := &user.User{ID: login, Email: email, Login: login}
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserService) GetUserByID(_ context.Context, userID string) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserService) GetUserByLoginOrEmail(_ context.Context, loginOrEmail string) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Login == loginOrEmail || u.Email == loginOrEmail {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}
