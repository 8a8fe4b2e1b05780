// Package minio stores trees in an S3-compatible bucket through minio-go.
package minio

import (
	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/go/fstree/errors"
)

// minPartSize is the smallest part S3 accepts in a multipart upload.
const minPartSize = 5 * 1024 * 1024

// Config selects the bucket a tree lives in and how to reach it.
type Config struct {
	// Endpoint is host[:port] of the server, e.g. "localhost:9000".
	Endpoint string

	// Bucket must already exist.
	Bucket string

	AccessKey string
	SecretKey string

	// UseSSL talks HTTPS to Endpoint.
	UseSSL bool

	// Prefix is prepended to every key, so several trees can share a bucket.
	Prefix string

	// Client replaces Endpoint and the credentials when set.
	Client *minio.Client

	// MultipartThreshold is the part size used once a file is large enough
	// for a multipart upload. Zero means 5MiB, the S3 minimum.
	MultipartThreshold int64
}

// validate requires a bucket plus either a Client or an endpoint with
// credentials.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return missing("bucket")
	}

	if c.MultipartThreshold != 0 && c.MultipartThreshold < minPartSize {
		return errors.WithContext(
			errors.Newf(errors.CodeInvalidConfig, "multipart threshold must be at least %d bytes", minPartSize),
			"field", "MultipartThreshold",
		)
	}

	if c.Client != nil {
		return nil
	}

	switch {
	case c.Endpoint == "":
		return missing("endpoint")
	case c.AccessKey == "":
		return missing("access key")
	case c.SecretKey == "":
		return missing("secret key")
	}
	return nil
}

func missing(field string) error {
	msg := field + " is required"
	if field != "bucket" {
		msg += " when client is not provided"
	}
	return errors.WithContext(errors.New(errors.CodeInvalidConfig, msg), "field", field)
}
