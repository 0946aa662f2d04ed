package julia

import (
	"regexp"
	"strings"
)

const stacktraceMarker = "\nStacktrace:\n"

// noisePatterns match stacktrace frames internal to the interop machinery,
// which the user cannot act on.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`PythonCall`),
	regexp.MustCompile(`JlWrap`),
	regexp.MustCompile(`juliacall`),
	regexp.MustCompile(`pyjlmodule_seval`),
}

// SplitStacktrace separates a Julia stderr blob into the error message and
// the stacktrace that follows the "Stacktrace:" marker. The stacktrace is ""
// when the blob has none.
func SplitStacktrace(msg string) (message, stack string) {
	if idx := strings.Index(msg, stacktraceMarker); idx >= 0 {
		return strings.TrimSpace(msg[:idx]), strings.TrimSpace(msg[idx+len(stacktraceMarker):])
	}
	return strings.TrimSpace(msg), ""
}

// FilterStacktrace drops frames matching the interop noise patterns. Returns
// "" when every frame was noise.
func FilterStacktrace(stack string) string {
	var keep []string
	for _, line := range strings.Split(stack, "\n") {
		noisy := false
		for _, p := range noisePatterns {
			if p.MatchString(line) {
				noisy = true
				break
			}
		}
		if !noisy {
			keep = append(keep, line)
		}
	}
	return strings.Join(keep, "\n")
}

// FormatError renders a Julia error message with its filtered stacktrace, if
// any frames survived filtering.
func FormatError(stderr string) string {
	message, stack := SplitStacktrace(stderr)
	if stack == "" {
		return message
	}
	if filtered := FilterStacktrace(stack); filtered != "" {
		return message + "\n\nStacktrace:\n" + filtered
	}
	return message
}
