// Package storage names and writes downloaded images.
//
// Filenames are built from the caller's external identifier, the article
// path segment and the image name, then reduced to letters, digits and
// spaces. Manager checks whether a name is already present and writes new
// files through a temporary file and rename.
//
//	name := storage.BuildFilename("run1", "Sample-Article-01-01", "aaa.jpg")
//	// name == "run1SampleArticle0101aaajpg"
//	if !manager.Exists(name) {
//	    _, err = manager.Save(bytes.NewReader(data), name)
//	}
package storage
