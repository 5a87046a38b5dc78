// Package sink opens the destination an export is written to.
package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/meetup-data/pkg/shared/files"
)

const (
	KindStdout = "stdout"
	KindFile   = "file"
	KindS3     = "s3"

	s3Scheme = "s3://"
)

// Options tune how a target is opened.
type Options struct {
	// DefaultName is the file name used when the target is a folder.
	DefaultName string
	S3Region    string
	// Uploader replaces the S3 uploader built from S3Region.
	Uploader s3manageriface.UploaderAPI
	Stdout   io.Writer
	Logger   hclog.Logger
}

// Sink is an opened export destination. Close flushes it; for S3 that is
// when the upload happens. Discard abandons a failed export: a file is
// removed and an S3 object is never uploaded.
type Sink interface {
	io.WriteCloser
	Discard() error
	Kind() string
	Location() string
}

// Kind classifies a target string: "" and "-" are stdout, s3:// URLs are S3
// objects and everything else is a local path.
func Kind(target string) string {
	switch {
	case target == "" || target == "-":
		return KindStdout
	case strings.HasPrefix(target, s3Scheme):
		return KindS3
	default:
		return KindFile
	}
}

// Open opens target for writing.
func Open(ctx context.Context, target string, opts Options) (Sink, error) {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	switch Kind(target) {
	case KindStdout:
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return &stdoutSink{w: out}, nil
	case KindS3:
		bucket, key, err := ParseS3URL(target)
		if err != nil {
			return nil, err
		}
		if strings.HasSuffix(key, "/") || key == "" {
			key += opts.DefaultName
		}
		uploader := opts.Uploader
		if uploader == nil {
			if uploader, err = newUploader(opts.S3Region); err != nil {
				return nil, err
			}
		}
		return &s3Sink{ctx: ctx, uploader: uploader, bucket: bucket, key: key, logger: opts.Logger}, nil
	default:
		return openFile(target, opts)
	}
}

// ParseS3URL splits s3://bucket/key into its bucket and key.
func ParseS3URL(raw string) (string, string, error) {
	if !strings.HasPrefix(raw, s3Scheme) {
		return "", "", fmt.Errorf("not an S3 URL: %q", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("S3 URL %q has no bucket", raw)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

func newUploader(region string) (s3manageriface.UploaderAPI, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return s3manager.NewUploader(sess), nil
}

func openFile(target string, opts Options) (Sink, error) {
	path, folder, err := files.DetermineFileFullPath(target, opts.DefaultName)
	if err != nil {
		return nil, err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	opts.Logger.Debug("writing to file", "path", path)
	return &fileSink{File: f}, nil
}

type stdoutSink struct {
	w io.Writer
}

func (s *stdoutSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s *stdoutSink) Close() error                { return nil }
func (s *stdoutSink) Discard() error              { return nil }
func (s *stdoutSink) Kind() string                { return KindStdout }
func (s *stdoutSink) Location() string            { return "-" }

type fileSink struct {
	*os.File
}

func (s *fileSink) Kind() string     { return KindFile }
func (s *fileSink) Location() string { return s.Name() }

func (s *fileSink) Discard() error {
	closeErr := s.File.Close()
	if err := os.Remove(s.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove partial output %q: %w", s.Name(), err)
	}
	if closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
		return closeErr
	}
	return nil
}

// s3Sink buffers the whole export and uploads it on Close.
type s3Sink struct {
	ctx      context.Context
	uploader s3manageriface.UploaderAPI
	bucket   string
	key      string
	buf      bytes.Buffer
	logger   hclog.Logger
	closed   bool
}

func (s *s3Sink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, fmt.Errorf("write to closed S3 sink %s", s.Location())
	}
	return s.buf.Write(p)
}

func (s *s3Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	result, err := s.uploader.UploadWithContext(s.ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
		Body:   bytes.NewReader(s.buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", s.Location(), err)
	}
	s.logger.Info("uploaded export", "bucket", s.bucket, "key", s.key, "location", result.Location)
	return nil
}

func (s *s3Sink) Discard() error {
	s.closed = true
	s.buf.Reset()
	s.logger.Debug("discarded export", "location", s.Location())
	return nil
}

func (s *s3Sink) Kind() string     { return KindS3 }
func (s *s3Sink) Location() string { return s3Scheme + s.bucket + "/" + s.key }
