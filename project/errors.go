package project

import "fmt"

type takeCopyError struct {
	fileName string
	err      error
}

func (e takeCopyError) Error() string {
	return fmt.Sprintf("copying take %s: %s", e.fileName, e.err.Error())
}

func (e takeCopyError) Unwrap() error {
	return e.err
}
