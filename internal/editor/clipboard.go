package editor

import (
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/text/unicode/norm"
)

// Clipboard is the system clipboard as used by copy and paste.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard talks to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// cleanClipboardText normalizes line endings and drops control characters
// other than newline and tab.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized
}

// plainText turns rich clipboard content into the text a user would expect
// to see pasted, in NFC form so macOS decomposed accents render as one cell.
func plainText(text string) string {
	switch {
	case isRTF(text):
		text = extractTextFromRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	return norm.NFC.String(strings.TrimSpace(cleanClipboardText(text)))
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") || strings.Contains(text, "<div") || strings.Contains(text, "<p"))
}

func extractTextFromRTF(rtf string) string {
	var result strings.Builder
	result.Grow(len(rtf))
	b := []byte(rtf)
	depth := 0
	skipDepth := -1

	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '{':
			depth++
			continue
		case '}':
			if depth == skipDepth {
				skipDepth = -1
			}
			depth--
			continue
		case '\\':
		default:
			if skipDepth < 0 && (b[i] >= 32 || b[i] == '\t') {
				result.WriteByte(b[i])
			}
			continue
		}

		if i+1 >= len(b) {
			break
		}
		next := b[i+1]
		switch {
		case next == '\\' || next == '{' || next == '}':
			if skipDepth < 0 {
				result.WriteByte(next)
			}
			i++
		case next == '\'' && i+3 < len(b):
			if val, err := strconv.ParseUint(string(b[i+2:i+4]), 16, 8); err == nil && skipDepth < 0 {
				result.WriteByte(byte(val))
			}
			i += 3
		case next == '*':
			skipDepth = depth
			i++
		case isASCIILetter(next):
			start := i + 1
			i++
			for i+1 < len(b) && isASCIILetter(b[i+1]) {
				i++
			}
			word := string(b[start : i+1])
			for i+1 < len(b) && (b[i+1] == '-' || (b[i+1] >= '0' && b[i+1] <= '9')) {
				i++
			}
			if i+1 < len(b) && b[i+1] == ' ' {
				i++
			}
			if skipDepth >= 0 {
				continue
			}
			switch word {
			case "par", "line":
				result.WriteByte('\n')
			case "tab":
				result.WriteByte('\t')
			case "fonttbl", "colortbl", "stylesheet", "info":
				skipDepth = depth
			}
		default:
			i++
		}
	}
	return result.String()
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

var htmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
	"&nbsp;", " ",
)

func extractTextFromHTML(html string) string {
	var result strings.Builder
	result.Grow(len(html))
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return htmlEntities.Replace(result.String())
}
