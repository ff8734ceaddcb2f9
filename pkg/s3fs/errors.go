package s3fs

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ErrInvalidConfig is returned by New for a config without bucket or credentials.
var ErrInvalidConfig = errors.New("s3fs: invalid configuration")

// mapError translates S3 errors into io/fs errors so callers can use
// errors.Is(err, fs.ErrNotExist).
func mapError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", fs.ErrNotExist, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", fs.ErrPermission, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", fs.ErrNotExist, err)
	}

	return err
}
