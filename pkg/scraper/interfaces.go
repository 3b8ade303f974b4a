package scraper

import (
	"context"

	"telegraphdl/pkg/telegraph"
)

// ArticleClient defines the telegraph operations the scraper depends on
type ArticleClient interface {
	ArticlePath(articleURL string) (string, error)
	ArticleImages(ctx context.Context, articleURL string) ([]telegraph.ImageInfo, error)
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

var _ ArticleClient = (*telegraph.Client)(nil)
