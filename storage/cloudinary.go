package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const uploadFolder = "class_images"

// CloudinaryStore implements the blob capability on Cloudinary. Uploaded
// images get a unique object name; delete works from the content URL.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	secret string
}

func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Cloudinary URL: %w", err)
	}
	secret, _ := parsedURL.User.Password()

	return &CloudinaryStore{cld: cld, secret: secret}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	publicID := uuid.NewString()
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID: publicID,
		Folder:   uploadFolder,
	})
	if err != nil {
		return "", fmt.Errorf("upload of %s failed: %w", filename, err)
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, contentURL string) error {
	publicID, err := PublicIDFromURL(contentURL)
	if err != nil {
		return err
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("failed to delete %s: %s", publicID, resp.Result)
	}
	return nil
}

// SignUploadParams produces a signature for a direct frontend upload into the
// class images folder.
func (s *CloudinaryStore) SignUploadParams() (signature string, timestamp int64, apiKey, folder string, err error) {
	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: uploadFolder,
	})
	if err != nil {
		return "", 0, "", "", fmt.Errorf("failed to prepare signature params: %w", err)
	}

	timestamp = time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err = api.SignParameters(paramsToSign, s.secret)
	if err != nil {
		return "", 0, "", "", fmt.Errorf("failed to sign upload params: %w", err)
	}

	return signature, timestamp, s.cld.Config.Cloud.APIKey, uploadFolder, nil
}

// PublicIDFromURL recovers the Cloudinary public id from a delivery URL,
// e.g. .../image/upload/v1700000000/class_images/<uuid>.jpg ->
// class_images/<uuid>.
func PublicIDFromURL(contentURL string) (string, error) {
	parsed, err := url.Parse(contentURL)
	if err != nil {
		return "", fmt.Errorf("invalid content URL %q: %w", contentURL, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	uploadIdx := -1
	for i, seg := range segments {
		if seg == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 0 || uploadIdx == len(segments)-1 {
		return "", fmt.Errorf("no public id in URL %q", contentURL)
	}

	rest := segments[uploadIdx+1:]
	// Skip the version segment if present.
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") {
		if _, err := strconv.Atoi(rest[0][1:]); err == nil {
			rest = rest[1:]
		}
	}

	publicID := strings.Join(rest, "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	if publicID == "" {
		return "", fmt.Errorf("no public id in URL %q", contentURL)
	}
	return publicID, nil
}
