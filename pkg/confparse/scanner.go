package confparse

import (
	"fmt"
	"strings"
)

// ScannedLine is one configuration line with its enclosing block headers,
// outermost first. A neighbor statement inside a VRF address-family carries
// Path like ["router bgp 64700", "address-family ipv4 vrf Campus_VN"].
type ScannedLine struct {
	// Text is the line content with surrounding whitespace trimmed.
	Text string

	// Path is the stack of enclosing block header lines (trimmed).
	Path []string
}

// frame is one open block on the scanner stack.
type frame struct {
	header string
	indent int
}

// ScanBlocks walks normalized lines and assigns each non-blank line to its
// enclosing block. IOS text is flat-indented: a block is opened by any line
// whose following lines are more deeply indented, and closed implicitly by a
// line at the same or shallower indentation, or explicitly by exit /
// exit-address-family / a top-level "!" separator. Blocks still open at end
// of input close implicitly.
//
// Returned warnings record lines whose nesting could not be determined; such
// lines are attributed to the top level rather than failing the scan.
func ScanBlocks(lines []string) ([]ScannedLine, []string) {
	var (
		stack    []frame
		scanned  []ScannedLine
		warnings []string
	)

	for num, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		indent := leadingSpaces(raw)

		// Comment/separator lines close blocks at their level but are not
		// facts and never open a block themselves.
		if strings.HasPrefix(trimmed, "!") {
			stack = popToIndent(stack, indent)
			continue
		}

		if indent > 0 && len(stack) == 0 {
			warnings = append(warnings,
				fmt.Sprintf("line %d: indented line outside any block, attributed to top level: %q", num+1, trimmed))
			scanned = append(scanned, ScannedLine{Text: trimmed})
			continue
		}

		stack = popToIndent(stack, indent)

		scanned = append(scanned, ScannedLine{Text: trimmed, Path: pathOf(stack)})

		switch {
		case trimmed == "exit-address-family":
			// Close the nearest address-family block even when the
			// terminator's own indentation already popped it.
			stack = popNamed(stack, "address-family")
		case trimmed == "exit" || trimmed == "end":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			// Any line is a potential block header: it becomes the parent
			// of subsequent, more deeply indented lines.
			stack = append(stack, frame{header: trimmed, indent: indent})
		}
	}

	return scanned, warnings
}

// popToIndent closes every block whose header is at the given indentation or
// deeper: a line at the same indent as a block header is its sibling.
func popToIndent(stack []frame, indent int) []frame {
	for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
		stack = stack[:len(stack)-1]
	}
	return stack
}

// popNamed closes up to and including the nearest block whose header starts
// with the given keyword. The stack is unchanged if no such block is open.
func popNamed(stack []frame, keyword string) []frame {
	for i := len(stack) - 1; i >= 0; i-- {
		if strings.HasPrefix(stack[i].header, keyword) {
			return stack[:i]
		}
	}
	return stack
}

func pathOf(stack []frame) []string {
	if len(stack) == 0 {
		return nil
	}
	path := make([]string, len(stack))
	for i, f := range stack {
		path[i] = f.header
	}
	return path
}

func leadingSpaces(s string) int {
	n := 0
	for _, c := range s {
		if c != ' ' {
			break
		}
		n++
	}
	return n
}
