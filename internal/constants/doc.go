// Package constants holds values shared by the command line and configuration layers.
package constants
