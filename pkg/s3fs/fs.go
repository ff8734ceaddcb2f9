package s3fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// API is the subset of *s3.Client used by FS.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// FS is a read-only file system over an S3 bucket prefix.
type FS struct {
	api    API
	ctx    context.Context
	bucket string
	prefix string
}

var (
	_ fs.FS         = (*FS)(nil)
	_ fs.StatFS     = (*FS)(nil)
	_ fs.ReadFileFS = (*FS)(nil)
	_ fs.ReadDirFS  = (*FS)(nil)
)

// New creates an FS backed by a new S3 client.
func New(cfg Config) (*FS, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return NewFromAPI(s3.New(s3.Options{}, opts...), cfg.Bucket, cfg.Prefix), nil
}

// NewFromAPI creates an FS over an existing client.
func NewFromAPI(api API, bucket, prefix string) *FS {
	return &FS{
		api:    api,
		ctx:    context.Background(),
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// WithContext returns a copy of f whose requests use ctx.
func (f *FS) WithContext(ctx context.Context) *FS {
	cp := *f
	cp.ctx = ctx
	return &cp
}

func (f *FS) key(name string) string {
	if name == "." {
		return f.prefix
	}
	if f.prefix == "" {
		return name
	}
	return f.prefix + "/" + name
}

// Open implements fs.FS.
func (f *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return f.openDir(name)
	}

	out, err := f.api.GetObject(f.ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		err = mapError(err)
		if isNotExist(err) {
			if ok, dirErr := f.isDir(name); dirErr == nil && ok {
				return f.openDir(name)
			}
		}
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}

	return &file{
		info:   fileInfo{name: path.Base(name), size: int64(len(data)), modTime: aws.ToTime(out.LastModified)},
		reader: bytes.NewReader(data),
	}, nil
}

// ReadFile implements fs.ReadFileFS.
func (f *FS) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}

	out, err := f.api.GetObject(f.ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: mapError(err)}
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// Stat implements fs.StatFS.
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return fileInfo{name: ".", dir: true}, nil
	}

	out, err := f.api.HeadObject(f.ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err == nil {
		return fileInfo{
			name:    path.Base(name),
			size:    aws.ToInt64(out.ContentLength),
			modTime: aws.ToTime(out.LastModified),
		}, nil
	}

	err = mapError(err)
	if isNotExist(err) {
		ok, dirErr := f.isDir(name)
		if dirErr != nil {
			return nil, &fs.PathError{Op: "stat", Path: name, Err: dirErr}
		}
		if ok {
			return fileInfo{name: path.Base(name), dir: true}, nil
		}
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
}

// ReadDir implements fs.ReadDirFS. Entries are sorted by name.
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	prefix := f.key(name)
	if prefix != "" {
		prefix += "/"
	}

	var (
		entries []fs.DirEntry
		token   *string
	)
	for {
		out, err := f.api.ListObjectsV2(f.ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(f.bucket),
			Prefix:            aws.String(prefix),
			Delimiter:         aws.String("/"),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, &fs.PathError{Op: "readdir", Path: name, Err: mapError(err)}
		}

		for _, cp := range out.CommonPrefixes {
			dir := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if dir != "" {
				entries = append(entries, fs.FileInfoToDirEntry(fileInfo{name: dir, dir: true}))
			}
		}
		for _, obj := range out.Contents {
			base := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if base == "" {
				continue
			}
			entries = append(entries, fs.FileInfoToDirEntry(fileInfo{
				name:    base,
				size:    aws.ToInt64(obj.Size),
				modTime: aws.ToTime(obj.LastModified),
			}))
		}

		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}

	if len(entries) == 0 && name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (f *FS) isDir(name string) (bool, error) {
	out, err := f.api.ListObjectsV2(f.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(f.bucket),
		Prefix:  aws.String(f.key(name) + "/"),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, mapError(err)
	}
	return len(out.Contents) > 0 || len(out.CommonPrefixes) > 0, nil
}

func (f *FS) openDir(name string) (fs.File, error) {
	entries, err := f.ReadDir(name)
	if err != nil {
		return nil, err
	}
	return &dir{info: fileInfo{name: path.Base(name), dir: true}, entries: entries}, nil
}

func isNotExist(err error) bool {
	return err != nil && errors.Is(err, fs.ErrNotExist)
}

type fileInfo struct {
	modTime time.Time
	name    string
	size    int64
	dir     bool
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) ModTime() time.Time { return fi.modTime }
func (fi fileInfo) IsDir() bool        { return fi.dir }
func (fi fileInfo) Sys() any           { return nil }

func (fi fileInfo) Mode() fs.FileMode {
	if fi.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}
