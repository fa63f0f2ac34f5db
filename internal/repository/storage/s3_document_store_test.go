package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	headErr   error
	created   []string
	createErr error
	puts      map[string][]byte
	putTypes  map[string]string
	putErr    error
	deleted   []string
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{puts: map[string][]byte{}, putTypes: map[string]string{}}
}

func (f *fakeObjectAPI) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeObjectAPI) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, aws.ToString(in.Bucket))
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts[aws.ToString(in.Key)] = data
	f.putTypes[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func offlinePresigner() *s3.PresignClient {
	client := s3.New(s3.Options{
		Region:       "ap-south-1",
		Credentials:  credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
		BaseEndpoint: aws.String("http://localhost:9000"),
		UsePathStyle: true,
	})
	return s3.NewPresignClient(client)
}

func TestEnsureBucket_Exists(t *testing.T) {
	api := newFakeObjectAPI()
	store := &S3DocumentStore{client: api, bucket: "smartlend-documents"}

	require.NoError(t, store.ensureBucket(context.Background()))
	assert.Empty(t, api.created)
}

func TestEnsureBucket_CreatesMissing(t *testing.T) {
	for name, headErr := range map[string]error{
		"not found":      &types.NotFound{},
		"no such bucket": &types.NoSuchBucket{},
	} {
		t.Run(name, func(t *testing.T) {
			api := newFakeObjectAPI()
			api.headErr = headErr
			store := &S3DocumentStore{client: api, bucket: "smartlend-documents"}

			require.NoError(t, store.ensureBucket(context.Background()))
			assert.Equal(t, []string{"smartlend-documents"}, api.created)
		})
	}
}

func TestEnsureBucket_PermissionError(t *testing.T) {
	api := newFakeObjectAPI()
	api.headErr = errors.New("access denied")
	store := &S3DocumentStore{client: api, bucket: "smartlend-documents"}

	err := store.ensureBucket(context.Background())
	assert.ErrorContains(t, err, "failed to check bucket")
	assert.Empty(t, api.created)
}

func TestUploadAndDelete(t *testing.T) {
	api := newFakeObjectAPI()
	store := &S3DocumentStore{client: api, bucket: "b"}
	ctx := context.Background()

	payload := []byte("%PDF-1.3 receipt")
	require.NoError(t, store.Upload(ctx, "loans/42/RECEIPT/RCPT-000101.pdf", bytes.NewReader(payload), int64(len(payload)), "application/pdf"))
	assert.Equal(t, payload, api.puts["loans/42/RECEIPT/RCPT-000101.pdf"])
	assert.Equal(t, "application/pdf", api.putTypes["loans/42/RECEIPT/RCPT-000101.pdf"])

	require.NoError(t, store.Delete(ctx, "loans/42/RECEIPT/RCPT-000101.pdf"))
	assert.Equal(t, []string{"loans/42/RECEIPT/RCPT-000101.pdf"}, api.deleted)
}

func TestUpload_Error(t *testing.T) {
	api := newFakeObjectAPI()
	api.putErr = errors.New("slow down")
	store := &S3DocumentStore{client: api, bucket: "b"}

	err := store.Upload(context.Background(), "x.pdf", bytes.NewReader(nil), 0, "application/pdf")
	assert.ErrorContains(t, err, "failed to upload x.pdf")
}

func TestPresignedURL(t *testing.T) {
	store := &S3DocumentStore{client: newFakeObjectAPI(), presigner: offlinePresigner(), bucket: "smartlend-documents"}

	url, err := store.PresignedURL(context.Background(), "loans/42/NOC/NOC_000042.pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "localhost:9000/smartlend-documents/loans/42/NOC/NOC_000042.pdf")
	assert.Contains(t, url, "X-Amz-Expires=900")
}
