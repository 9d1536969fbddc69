package export

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxSheetNameLen is the worksheet-name length ceiling imposed by the
// xlsx format. Excel refuses to open workbooks with longer tab names.
const maxSheetNameLen = 31

// fallbackSheetName is used when sanitizing an application name leaves
// nothing printable.
const fallbackSheetName = "Sheet"

// illegalSheetChars are the characters the xlsx format forbids in
// worksheet names. Each occurrence is replaced with an underscore.
const illegalSheetChars = `\/*[]:?`

// SheetNamer allocates collision-free worksheet names for one run.
//
// It owns the set of names already handed out; every name it returns is
// recorded before being returned, so two calls can never produce the same
// name within a run. The type is not safe for concurrent use — the batch
// is strictly sequential, so no locking is needed.
type SheetNamer struct {
	used map[string]bool
}

// NewSheetNamer creates a SheetNamer with an empty used-name set.
func NewSheetNamer() *SheetNamer {
	return &SheetNamer{used: make(map[string]bool)}
}

// Allocate derives a worksheet name from an application's display name,
// guaranteeing the result is at most 31 characters long, contains no
// characters illegal in worksheet names, and differs from every name
// previously returned by this SheetNamer.
//
// Derivation steps:
//  1. Trim surrounding whitespace, then replace each illegal character
//     (backslash, slash, asterisk, brackets, colon, question mark) with
//     an underscore.
//  2. Substitute "Sheet" if nothing remains.
//  3. Truncate to the first 31 characters.
//  4. On collision, append "_1", "_2", … — re-truncating the base so the
//     combined candidate still fits — and take the first free candidate.
func (n *SheetNamer) Allocate(appName string) string {
	base := sanitizeSheetName(appName)

	candidate := base
	if !n.used[candidate] {
		n.used[candidate] = true
		return candidate
	}

	// The plain name is taken; try suffixed candidates in order. The
	// suffix counts up without bound, so this loop always terminates at
	// the first counter value not yet allocated.
	for i := 1; ; i++ {
		suffix := "_" + strconv.Itoa(i)
		trimmed := truncateRunes(base, maxSheetNameLen-len(suffix))
		candidate = trimmed + suffix
		if !n.used[candidate] {
			n.used[candidate] = true
			return candidate
		}
	}
}

// sanitizeSheetName applies steps 1-3 of the allocation algorithm:
// trim, replace illegal characters, substitute the fallback, truncate.
func sanitizeSheetName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalSheetChars, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	if cleaned == "" {
		return fallbackSheetName
	}
	return truncateRunes(cleaned, maxSheetNameLen)
}

// truncateRunes cuts s to at most max characters. The worksheet-name
// ceiling counts characters, not bytes, so truncation must land on a rune
// boundary — a byte slice would cut a multi-byte application name mid-rune
// and feed invalid UTF-8 into the workbook.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
