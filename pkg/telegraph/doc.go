// Package telegraph talks to telegra.ph.
//
// It fetches article pages and images with a randomized User-Agent and a
// fixed Referer, pulls image references out of the page with a textual
// pattern, and resolves each reference to a download URL and a short name:
//
//	refs := telegraph.ExtractImageRefs(html)
//	info := telegraph.Resolve(refs[0]) // {Name: "abc123.jpg", URL: "https://telegra.ph/file/abc123.jpg"}
//
// Errors are *errors.Error values typed as network, http_status or
// malformed_input.
package telegraph
