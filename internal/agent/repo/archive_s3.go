package repo

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
)

// S3ReportArchiver uploads finished call reports as JSON objects keyed
// <prefix><room>/<summary id>.json.
type S3ReportArchiver struct {
	uploader s3manageriface.UploaderAPI
	bucket   string
	prefix   string
}

// NewS3ReportArchiver builds an uploader from cfg. Credentials come from the
// default AWS chain; Endpoint, when set, targets an S3-compatible store.
func NewS3ReportArchiver(cfg model.ArchiveConfig) (*S3ReportArchiver, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return NewS3ReportArchiverWithUploader(s3manager.NewUploader(sess), cfg.Bucket, cfg.Prefix), nil
}

func NewS3ReportArchiverWithUploader(u s3manageriface.UploaderAPI, bucket, prefix string) *S3ReportArchiver {
	return &S3ReportArchiver{uploader: u, bucket: bucket, prefix: prefix}
}

// Key is the object key a report is stored under.
func (a *S3ReportArchiver) Key(report model.CallReport) string {
	return a.prefix + path.Join(report.RoomID, report.Summary.SummaryID+".json")
}

func (a *S3ReportArchiver) Archive(ctx context.Context, report model.CallReport) (string, error) {
	b, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	key := a.Key(report)

	out, err := a.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logx.Error().Err(err).Str("bucket", a.bucket).Str("key", key).Msg("failed to upload call report")
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return out.Location, nil
}

var _ model.ReportArchiver = (*S3ReportArchiver)(nil)
