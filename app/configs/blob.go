package configs

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// OpenBucket opens the upload bucket from a gocloud URL such as
// file:///var/lib/storefront/uploads?create_dir=true, mem:// or s3://bucket?region=...
func OpenBucket(ctx context.Context, env ENV) (*blob.Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, env.BlobBucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob bucket %q: %w", env.BlobBucketURL, err)
	}
	return bucket, nil
}
