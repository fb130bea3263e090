package downloader

import "fmt"

// TransferError is a failed file download.
type TransferError struct {
	Url  string
	Path string
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("error downloading file: %v", e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }
