package reminder

import (
	"strings"
)

func field(label, value string) string {
	return "<li><span>" + label + ":</span><div>" + value + "</div></li>"
}

func subrecord(fields ...string) string {
	return "<ul>" + strings.Join(fields, "\n") + "</ul>"
}

func record(fields ...string) string {
	return "<li><ul>" + strings.Join(fields, "\n") + "</ul></li>"
}

func document(records ...string) string {
	return "<!DOCTYPE html><html><head><title>Reminders</title></head><body><h1>Reminders</h1><ul>" +
		strings.Join(records, "\n") + "</ul></body></html>"
}

func intPtr(n int) *int { return &n }
