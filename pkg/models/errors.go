package models

// ErrorKind classifies why a measurement could not be taken.
type ErrorKind string

const (
	ErrorKindNone         ErrorKind = ""
	ErrorKindUnavailable  ErrorKind = "unavailable"
	ErrorKindTimeout      ErrorKind = "timeout"
	ErrorKindParseFailure ErrorKind = "parse_failure"
	ErrorKindCancelled    ErrorKind = "cancelled"
	ErrorKindFatal        ErrorKind = "fatal"
)

// Unavailable is the sentinel reported for a latency that could not be measured.
const Unavailable = -1.0
