// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide the small set of operations a consistency
// run needs against the export bucket. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the export bucket before any work starts.
//   - ListObjects: Lists objects under a prefix, paginating transparently.
//   - FGetObject: Downloads an object straight into a local file.
//   - RemoveObjects: Deletes exported objects once a run is finished (--cleanup).
//
// # Credentials
//
// Static keys are used when configured. Otherwise the client walks the AWS
// environment variables, the shared credentials file and the instance role.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
