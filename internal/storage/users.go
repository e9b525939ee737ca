package storage

import (
	"errors"
	"sort"

	"github.com/example/cybercalc/pkg/models"
)

// ErrUsernameTaken is returned by CreateUser when the username already exists
var ErrUsernameTaken = errors.New("username already exists")

// GetUser returns a copy of the user, or false if it does not exist
func (s *MemStorage) GetUser(id int) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.state.Users[id]
	if !ok {
		return nil, false
	}
	return &user, true
}

// GetUserByUsername finds a user by exact username
func (s *MemStorage) GetUserByUsername(username string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.findByUsername(username)
	if !ok {
		return nil, false
	}
	return &user, true
}

// findByUsername is a linear scan; the account set is small. Must be called with s.mu held.
func (s *MemStorage) findByUsername(username string) (models.User, bool) {
	for _, user := range s.state.Users {
		if user.Username == username {
			return user, true
		}
	}
	return models.User{}, false
}

// CreateUser registers a new account with zero points and full lives.
// The uniqueness check and the insert happen under the same lock.
func (s *MemStorage) CreateUser(username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findByUsername(username); exists {
		return nil, ErrUsernameTaken
	}

	id := s.state.CurrentUserID
	s.state.CurrentUserID++
	user := models.User{
		ID:       id,
		Username: username,
		Password: password,
		Points:   0,
		Lives:    models.MaxLives,
	}
	s.state.Users[id] = user
	s.persist()

	return &user, nil
}

// UpdateUser applies fn to the stored user and persists the result.
// fn runs under the store lock and must not call back into the store.
func (s *MemStorage) UpdateUser(id int, fn func(user *models.User)) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.state.Users[id]
	if !ok {
		return nil, false
	}
	fn(&user)
	user.ID = id
	s.state.Users[id] = user
	s.persist()

	return &user, true
}

// UpdateUserPoints replaces the user's points. The value is trusted to be >= 0.
func (s *MemStorage) UpdateUserPoints(id, points int) (*models.User, bool) {
	return s.UpdateUser(id, func(user *models.User) {
		user.Points = points
	})
}

// UpdateUserLives replaces the user's lives. The value is trusted to be within [0, MaxLives].
func (s *MemStorage) UpdateUserLives(id, lives int) (*models.User, bool) {
	return s.UpdateUser(id, func(user *models.User) {
		user.Lives = lives
	})
}

// AddUserPoints adds delta to the user's points in a single read-modify-write
func (s *MemStorage) AddUserPoints(id, delta int) (*models.User, bool) {
	return s.UpdateUser(id, func(user *models.User) {
		user.Points += delta
	})
}

// GetUserProgress derives the points/lives projection of a user
func (s *MemStorage) GetUserProgress(id int) (*models.UserProgress, bool) {
	user, ok := s.GetUser(id)
	if !ok {
		return nil, false
	}
	progress := user.Progress()
	return &progress, true
}

// ListUsers returns every user in id order
func (s *MemStorage) ListUsers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.state.Users))
	for _, user := range s.state.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}
