package gamejolt

import (
	"errors"
	"fmt"
)

var (
	ErrBadHost   = errors.New("not a game jolt URL")
	ErrBadPath   = errors.New("not a game page path")
	ErrNoId      = errors.New("no game id in the URL")
	ErrBadId     = errors.New("game id must be a positive number")
	ErrNoPayload = errors.New("no payload in the response")
	ErrNoUrl     = errors.New("no url in the response payload")
	ErrNoToken   = errors.New("no token found")
)

// ResolutionError is returned when a game id can't be taken from the input.
type ResolutionError struct {
	Input string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("couldn't extract game id from %q: %v", e.Input, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// FetchError is any transport or response shape failure of an API call.
type FetchError struct {
	Op  string
	Url string
	Err error
}

func (e *FetchError) Error() string {
	if e.Url == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Url, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StatusError is a non-2xx API response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string { return "bad status: " + e.Status }
