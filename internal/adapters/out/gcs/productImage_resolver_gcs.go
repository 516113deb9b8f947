// internal/adapters/out/gcs/productImage_resolver_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"
)

// ProductImageResolver resolves product image object paths to public URLs
// for catalog responses.
//
// objectPath can be:
// - http(s)://... (returned as-is)
// - an object path within the configured bucket
//
// The storage client is used to probe object existence; a missing object
// resolves to "" so the page falls back to bundled assets.
type ProductImageResolver struct {
	Client *storage.Client
	Bucket string
}

func NewProductImageResolver(client *storage.Client, bucket string) *ProductImageResolver {
	return &ProductImageResolver{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

func (r *ProductImageResolver) Resolve(ctx context.Context, objectPath string) (string, error) {
	if r == nil {
		return "", errors.New("product_image_resolver: resolver is nil")
	}

	p := strings.TrimSpace(objectPath)
	if p == "" {
		return "", nil
	}

	// already absolute URL
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p, nil
	}

	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		// bucket not configured: nothing to resolve against
		return "", nil
	}

	p = strings.TrimLeft(p, "/")

	if r.Client != nil {
		_, err := r.Client.Bucket(b).Object(p).Attrs(ctx)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotExist) {
				log.Printf("[product_image_resolver] object missing bucket=%s path=%s", b, p)
				return "", nil
			}
			return "", err
		}
	}

	return gcsPublicURL(b, p), nil
}

func gcsPublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}
