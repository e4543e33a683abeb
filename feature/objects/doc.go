// Package objects discovers and fetches the exported files of a consistency run.
//
// A Bucket lists objects by prefix as a lazy sequence that keeps requesting pages
// until the listing is exhausted, downloads keys into a local folder (keeping the
// key's own subfolders) and, when asked, removes a run's exports afterwards.
// LoadLines turns the downloaded files into one ordered dataset.
//
// # Usage
//
//	b := objects.NewBucket(client, cfg.Storage.Bucket, 0, log)
//	refs, err := objects.Collect(b.List(ctx, "rds_20240101_120000"))
//	paths, err := b.Download(ctx, objects.Keys(refs), "data_rds")
//	lines, err := objects.LoadLines(paths)
package objects
