package repository

import "fmt"

// MemberError указывает, какой участник в источнике не прошел валидацию
type MemberError struct {
	Index int
	Err   error
}

func (e *MemberError) Error() string {
	return fmt.Sprintf("member #%d: %v", e.Index, e.Err)
}

func (e *MemberError) Unwrap() error {
	return e.Err
}
