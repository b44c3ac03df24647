// Package utils provides small helpers shared across the application:
// header line parsing, safe numeric conversions, file checks and content type detection.
package utils
