package main

import "errors"

var (
	ErrRunning  = errors.New("animator already running")
	ErrDetached = errors.New("surface not attached")
	ErrNoFrames = errors.New("frame count must be positive")
)
