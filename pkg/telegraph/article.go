package telegraph

import (
	"fmt"
	"regexp"
	"strings"

	"telegraphdl/pkg/errors"
)

// ArticlePath returns the article-specific part of articleURL: the
// percent-decoded text after the first "<host>/". host is the bare host of
// the site, e.g. "telegra.ph".
func ArticlePath(articleURL, host string) (string, error) {
	decoded := unquote(articleURL)

	pattern, err := regexp.Compile(regexp.QuoteMeta(host) + `/(.+)`)
	if err != nil {
		return "", errors.New(errors.ErrorTypeMalformedInput, "article_path", articleURL, err)
	}

	m := pattern.FindStringSubmatch(decoded)
	if m == nil {
		return "", errors.New(errors.ErrorTypeMalformedInput, "article_path", articleURL,
			fmt.Errorf("expected a URL of the form https://%s/<path>", host))
	}
	return m[1], nil
}

// unquote decodes every valid %XX escape and leaves anything else, such as
// a lone "%" or "%zz", as written. Decoded bytes that are not valid UTF-8
// become U+FFFD, one per byte.
func unquote(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		buf = append(buf, s[i])
	}
	return string([]rune(string(buf)))
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
