package engine

import "strings"

// HeaderList is a singly linked list of raw "Name: value" header lines.
// The list returned by AppendHeader is authoritative: callers must replace
// their reference with it after every append.
type HeaderList struct {
	// line is the raw header line.
	line string
	// next is the following entry, nil for the tail.
	next *HeaderList
}

// Lines returns the header lines in insertion order.
func (l *HeaderList) Lines() []string {
	var lines []string

	for node := l; node != nil; node = node.next {
		lines = append(lines, node.line)
	}

	return lines
}

// Len returns the number of entries in the list.
func (l *HeaderList) Len() int {
	count := 0

	for node := l; node != nil; node = node.next {
		count++
	}

	return count
}

// appendHeaderLine appends line to list and returns the head of the resulting list.
// It returns nil when the line cannot be represented on the wire, leaving list untouched.
func appendHeaderLine(list *HeaderList, line string) *HeaderList {
	if !isValidHeaderLine(line) {
		return nil
	}

	node := &HeaderList{line: line}
	if list == nil {
		return node
	}

	tail := list
	for tail.next != nil {
		tail = tail.next
	}

	tail.next = node

	return list
}

// freeHeaderList unlinks every node so the list can no longer be walked.
func freeHeaderList(list *HeaderList) {
	for node := list; node != nil; {
		next := node.next
		node.next = nil
		node.line = ""
		node = next
	}
}

// isValidHeaderLine accepts "Name: value", "Name:" (removal) and "Name;" (empty value) forms.
func isValidHeaderLine(line string) bool {
	if line == "" || strings.ContainsAny(line, "\r\n\x00") {
		return false
	}

	separator := strings.IndexAny(line, ":;")

	return separator > 0
}

// splitHeaderLine splits a raw line into name and value.
// The remove flag is set for the "Name:" form, which suppresses a default header.
func splitHeaderLine(line string) (name, value string, remove bool) {
	separator := strings.IndexAny(line, ":;")
	if separator <= 0 {
		return "", "", false
	}

	name = strings.TrimSpace(line[:separator])
	value = strings.TrimSpace(line[separator+1:])

	if line[separator] == ';' {
		// "Name;" sends the header with an empty value.
		return name, "", false
	}

	return name, value, value == ""
}
