package logos

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

type fakeObjects struct {
	objects  map[string]string
	deleted  []string
	pageSize int
	listed   int
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, _ := io.ReadAll(in.Body)
	f.objects[aws.ToString(in.Key)] = string(data)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.listed++
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	// the token is the last key returned, so deletes between pages are safe
	start := 0
	if in.ContinuationToken != nil {
		start = sort.SearchStrings(keys, *in.ContinuationToken)
		if start < len(keys) && keys[start] == *in.ContinuationToken {
			start++
		}
	}
	end := len(keys)
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, key := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end-1])
	}
	return out, nil
}

func (f *fakeObjects) DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	for _, obj := range in.Delete.Objects {
		key := aws.ToString(obj.Key)
		f.deleted = append(f.deleted, key)
		delete(f.objects, key)
	}
	return &s3.DeleteObjectsOutput{}, nil
}

func TestUploadReturnsPublicURL(t *testing.T) {
	objects := &fakeObjects{objects: map[string]string{}}
	store := NewS3Store(objects, "team-logos", "https://cdn.example.com/")

	url, err := store.Upload(context.Background(), "owner/team.png", "image/png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://cdn.example.com/owner/team.png" {
		t.Errorf("url = %q", url)
	}
	if objects.objects["owner/team.png"] != "png" {
		t.Error("object body not stored")
	}
}

func TestDeleteTeamLogosOnlyTouchesTeam(t *testing.T) {
	owner, team, other := uuid.New(), uuid.New(), uuid.New()
	objects := &fakeObjects{objects: map[string]string{
		owner.String() + "/" + team.String() + ".png":  "a",
		owner.String() + "/" + team.String() + ".webp": "b",
		owner.String() + "/" + other.String() + ".png": "c",
	}}
	store := NewS3Store(objects, "team-logos", "https://cdn.example.com")

	if err := store.DeleteTeamLogos(context.Background(), owner, team); err != nil {
		t.Fatalf("DeleteTeamLogos: %v", err)
	}
	if len(objects.deleted) != 2 {
		t.Errorf("deleted %v, want the two team objects", objects.deleted)
	}
	if _, ok := objects.objects[owner.String()+"/"+other.String()+".png"]; !ok {
		t.Error("other team's logo must survive")
	}
}

func TestDeleteTeamLogosPagesThroughListing(t *testing.T) {
	owner, team, other := uuid.New(), uuid.New(), uuid.New()
	objects := &fakeObjects{pageSize: 2, objects: map[string]string{
		owner.String() + "/" + other.String() + ".png": "keep",
	}}
	for _, ext := range []string{"gif", "jpg", "png", "webp", "old.png"} {
		objects.objects[owner.String()+"/"+team.String()+"."+ext] = ext
	}
	store := NewS3Store(objects, "team-logos", "https://cdn.example.com")

	if err := store.DeleteTeamLogos(context.Background(), owner, team); err != nil {
		t.Fatalf("DeleteTeamLogos: %v", err)
	}
	if len(objects.deleted) != 5 {
		t.Errorf("deleted %d objects, want 5", len(objects.deleted))
	}
	if objects.listed != 3 {
		t.Errorf("listed %d pages, want 3", objects.listed)
	}
	if _, ok := objects.objects[owner.String()+"/"+other.String()+".png"]; !ok {
		t.Error("another team's logo was deleted")
	}
}
