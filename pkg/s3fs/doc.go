// Package s3fs exposes an S3 bucket prefix as a read-only [io/fs.FS], so
// email templates can be stored in object storage and edited without a
// redeploy.
//
//	fsys, err := s3fs.New(s3fs.Config{
//		Bucket:    "acme-templates",
//		Prefix:    "emails",
//		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//	})
//	m, err := mailer.New(mailer.WithFS(fsys), mailer.WithViewsRoot("."))
//
// S3 has no directories. A name is a directory when at least one key
// starts with "name/". Files are read fully into memory on Open.
//
// fs.FS methods take no context, so requests use the context set with
// WithContext (context.Background by default).
package s3fs
