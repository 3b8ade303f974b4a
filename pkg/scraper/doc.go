// Package scraper downloads every image of a telegra.ph article.
//
// A run derives the article's path segment from its URL, fetches the page,
// extracts and resolves the image references and then handles each image in
// page order:
//
//   - the target name is {external_id}_{path}_{image}, reduced to letters,
//     digits and spaces
//   - an existing target is skipped with a "Skipping" notice
//   - otherwise the image is fetched and written, a "Downloaded" notice is
//     printed and the pacer pauses before the next image
//
// Usage:
//
//	s, err := scraper.NewFromConfig(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := s.Download(ctx, "out", "run1", "https://telegra.ph/Sample-Article-01-01")
//
// There is no retry: the first network or filesystem error ends the run.
package scraper
