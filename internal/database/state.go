package database

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/example/cybercalc/pkg/models"
)

// State is the complete persisted snapshot: every entity map plus the next-id counters.
//
// Entity maps are encoded as ordered lists of [id, entity] pairs, ascending by id:
//
//	{"users":[[1,{...}]],"quizzes":[],"challenges":[],
//	 "currentUserId":2,"currentQuizId":1,"currentChallengeId":1}
type State struct {
	Users              map[int]models.User
	Quizzes            map[int]models.Quiz
	Challenges         map[int]models.Challenge
	CurrentUserID      int
	CurrentQuizID      int
	CurrentChallengeID int
}

// NewState returns an empty state with all counters at 1
func NewState() *State {
	return &State{
		Users:              make(map[int]models.User),
		Quizzes:            make(map[int]models.Quiz),
		Challenges:         make(map[int]models.Challenge),
		CurrentUserID:      1,
		CurrentQuizID:      1,
		CurrentChallengeID: 1,
	}
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	c := &State{
		Users:              make(map[int]models.User, len(s.Users)),
		Quizzes:            make(map[int]models.Quiz, len(s.Quizzes)),
		Challenges:         make(map[int]models.Challenge, len(s.Challenges)),
		CurrentUserID:      s.CurrentUserID,
		CurrentQuizID:      s.CurrentQuizID,
		CurrentChallengeID: s.CurrentChallengeID,
	}
	for id, u := range s.Users {
		c.Users[id] = u
	}
	for id, q := range s.Quizzes {
		c.Quizzes[id] = q
	}
	for id, ch := range s.Challenges {
		c.Challenges[id] = ch
	}
	return c
}

// pair is a single [id, entity] element of the document
type pair[T any] struct {
	ID    int
	Value T
}

func (p pair[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.ID, p.Value})
}

func (p *pair[T]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("expected [id, entity] pair, got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.ID); err != nil {
		return fmt.Errorf("failed to decode pair id: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Value); err != nil {
		return fmt.Errorf("failed to decode pair %d: %w", p.ID, err)
	}
	return nil
}

type document struct {
	Users              []pair[models.User]      `json:"users"`
	Quizzes            []pair[models.Quiz]      `json:"quizzes"`
	Challenges         []pair[models.Challenge] `json:"challenges"`
	CurrentUserID      int                      `json:"currentUserId"`
	CurrentQuizID      int                      `json:"currentQuizId"`
	CurrentChallengeID int                      `json:"currentChallengeId"`
}

func toPairs[T any](m map[int]T) []pair[T] {
	pairs := make([]pair[T], 0, len(m))
	for id, v := range m {
		pairs = append(pairs, pair[T]{ID: id, Value: v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].ID < pairs[j].ID })
	return pairs
}

func fromPairs[T any](pairs []pair[T]) map[int]T {
	m := make(map[int]T, len(pairs))
	for _, p := range pairs {
		m[p.ID] = p.Value
	}
	return m
}

// MarshalJSON encodes the state in the document layout
func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		Users:              toPairs(s.Users),
		Quizzes:            toPairs(s.Quizzes),
		Challenges:         toPairs(s.Challenges),
		CurrentUserID:      s.CurrentUserID,
		CurrentQuizID:      s.CurrentQuizID,
		CurrentChallengeID: s.CurrentChallengeID,
	})
}

// UnmarshalJSON decodes a document into the state
func (s *State) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = State{
		Users:              fromPairs(doc.Users),
		Quizzes:            fromPairs(doc.Quizzes),
		Challenges:         fromPairs(doc.Challenges),
		CurrentUserID:      doc.CurrentUserID,
		CurrentQuizID:      doc.CurrentQuizID,
		CurrentChallengeID: doc.CurrentChallengeID,
	}
	return nil
}

// Encode serializes the state into its JSON document
func Encode(s *State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Decode parses a JSON document into a state
func Decode(data []byte) (*State, error) {
	s := NewState()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	return s, nil
}
