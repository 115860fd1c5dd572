package main

import "errors"

var (
	ErrMissingInput  = errors.New("missing --input")
	ErrUnknownSource = errors.New("unknown signal source")
	ErrUnknownOutput = errors.New("unknown output format")
	ErrInvalidRecord = errors.New("invalid record file")
	ErrHashMismatch  = errors.New("fingerprint does not match")
)
