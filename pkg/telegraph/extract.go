package telegraph

import (
	"regexp"
	"strings"
)

// imgSrcPattern matches the double-quoted src of an img tag. This is a
// textual match, not an HTML parse: attributes before src, single quotes or
// whitespace inside the value are not matched.
var imgSrcPattern = regexp.MustCompile(`img src="(\S+?)"`)

// ExtractImageRefs returns every matched src value in document order,
// duplicates included, exactly as written in the page.
func ExtractImageRefs(html string) []string {
	matches := imgSrcPattern.FindAllStringSubmatch(html, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// ImageInfo is one resolved image reference
type ImageInfo struct {
	// Name is the raw reference with every "/file/" removed
	Name string `json:"name"`
	// URL is the absolute download URL
	URL string `json:"url"`
}

// Resolve maps a raw reference such as "/file/abc123.jpg" against
// DefaultBaseURL.
func Resolve(raw string) ImageInfo {
	return resolve(DefaultBaseURL, raw)
}

// resolve does no validation: malformed references give malformed names
// and URLs.
func resolve(baseURL, raw string) ImageInfo {
	return ImageInfo{
		Name: strings.ReplaceAll(raw, filePrefix, ""),
		URL:  baseURL + raw,
	}
}
