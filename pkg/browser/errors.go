package browser

import "errors"

var (
	ErrLaunch  = errors.New("failed to launch browser")
	ErrConnect = errors.New("failed to connect to browser")
	ErrPage    = errors.New("failed to open page")
)
