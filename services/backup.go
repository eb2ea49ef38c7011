package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"github.com/theramind/journal_api/dto"
	"github.com/theramind/journal_api/shared"
)

// BackupService snapshots the journal document into object storage. The
// document is already encrypted field-by-field at rest, so the snapshot
// never contains entry cleartext.
type BackupService struct {
	appContext.DefaultService

	journalSvc *JournalService

	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
}

const BACKUP_SVC = "backup_svc"

func (svc BackupService) Id() string {
	return BACKUP_SVC
}

func (svc *BackupService) Configure(ctx *appContext.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	if svc.endpoint == "" {
		svc.endpoint = "localhost:9000"
	}

	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	if svc.accessKey == "" {
		svc.accessKey = "admin"
	}

	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	if svc.secretKey == "" {
		svc.secretKey = "password123"
	}

	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucketName = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucketName == "" {
		svc.bucketName = "theramind-journal"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *BackupService) Start() error {
	svc.journalSvc = svc.Service(JOURNAL_SVC).(*JournalService)

	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}

	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.WithField("endpoint", svc.endpoint).Info("Backup service started")
	return nil
}

func (svc *BackupService) ensureBucket() error {
	ctx := context.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.WithField("bucket", svc.bucketName).Info("Created MinIO bucket")
	}

	return nil
}

// Backup uploads a timestamped snapshot of the journal document and
// returns the stored object name and size.
func (svc *BackupService) Backup() (*dto.BackupResponse, error) {
	snapshot, err := svc.journalSvc.Repository().Snapshot()
	if err != nil {
		return nil, shared.NewInternalError(err)
	}

	objectName := fmt.Sprintf("%s%s.json", shared.BackupObjectPrefix, time.Now().UTC().Format("20060102T150405Z"))

	info, err := svc.client.PutObject(
		context.Background(),
		svc.bucketName,
		objectName,
		bytes.NewReader(snapshot),
		int64(len(snapshot)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return nil, shared.NewInternalError(fmt.Errorf("failed to upload backup: %w", err))
	}

	log.WithField("object", info.Key).WithField("size", info.Size).Info("Journal backup uploaded")

	return &dto.BackupResponse{Object: info.Key, Size: info.Size}, nil
}

// ListBackups returns prior snapshots, oldest first (object names are
// timestamped, so listing order is chronological).
func (svc *BackupService) ListBackups() (*dto.BackupListResponse, error) {
	ctx := context.Background()

	backups := []dto.BackupInfo{}
	objectCh := svc.client.ListObjects(ctx, svc.bucketName, minio.ListObjectsOptions{
		Prefix:    shared.BackupObjectPrefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, shared.NewInternalError(fmt.Errorf("failed to list backups: %w", object.Err))
		}
		backups = append(backups, dto.BackupInfo{
			Object:       object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}

	return &dto.BackupListResponse{Backups: backups}, nil
}
