// Package session keeps track of who is signed in. There is no
// authentication: any name of at least MinUsernameLength characters is
// accepted.
package session

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const MinUsernameLength = 2

var (
	ErrUsernameRequired = errors.New("please enter your username")
	ErrUsernameTooShort = errors.New("username must be at least 2 characters")
)

type Persistor interface {
	User() (string, bool)
	SetUser(string) error
	ClearUser() error
}

type Session struct {
	persist Persistor
	user    string
}

func New(p Persistor) *Session {
	return &Session{persist: p}
}

// Validate trims name and checks that it can be used to sign in
func Validate(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrUsernameRequired
	}
	if utf8.RuneCountInString(name) < MinUsernameLength {
		return "", ErrUsernameTooShort
	}
	return name, nil
}

// SignIn persists name and makes it the current user.
// An invalid name changes nothing.
func (s *Session) SignIn(name string) error {
	name, err := Validate(name)
	if err != nil {
		return err
	}
	if err := s.persist.SetUser(name); err != nil {
		return err
	}
	s.user = name
	return nil
}

func (s *Session) SignOut() error {
	if err := s.persist.ClearUser(); err != nil {
		return err
	}
	s.user = ""
	return nil
}

// Restore picks up the user persisted by an earlier run
func (s *Session) Restore() (string, bool) {
	s.user, _ = s.persist.User()
	return s.Current()
}

func (s *Session) Current() (string, bool) {
	return s.user, s.user != ""
}
