// Package linkstrip rewrites relative Markdown link targets so they resolve
// once pages are rendered to HTML: "./guide.md#setup" becomes
// "./guide#setup". Absolute URLs are left alone.
//
// The package works on two trees. Apply, Plan and Transform operate on
// mdast trees for source rewriting. Extension plugs the same rule into a
// goldmark rendering pipeline.
package linkstrip

import "strings"

const (
	mdSuffix       = ".md"
	schemeSep      = "://"
	fragmentMarker = '#'
)

// IsRelative reports whether target is treated as a relative link.
//
// A target is relative when it starts with "./" or "../", or does not
// contain "://". Targets with a scheme but no "//", such as "mailto:x",
// count as relative.
func IsRelative(target string) bool {
	return strings.HasPrefix(target, "./") ||
		strings.HasPrefix(target, "../") ||
		!strings.Contains(target, schemeSep)
}

// StripTarget removes the first ".md" in a relative target that is followed
// by the end of the string or by "#". Non-relative targets and targets
// without such a suffix are returned unchanged.
func StripTarget(target string) string {
	idx := stripIndex(target)
	if idx < 0 {
		return target
	}
	return target[:idx] + target[idx+len(mdSuffix):]
}

// stripIndex returns the offset of the ".md" StripTarget removes, or -1.
func stripIndex(target string) int {
	if !IsRelative(target) {
		return -1
	}

	for from := 0; ; {
		i := strings.Index(target[from:], mdSuffix)
		if i < 0 {
			return -1
		}
		i += from

		end := i + len(mdSuffix)
		if end == len(target) || target[end] == fragmentMarker {
			return i
		}
		from = i + 1
	}
}
