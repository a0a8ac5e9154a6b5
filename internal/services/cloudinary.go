package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinted-clone/marketplace-backend/internal/models"
)

// AssetUploader stores an image under a logical folder and describes the result.
type AssetUploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*models.Asset, error)
}

// UserFolder and OfferFolder key uploads by the owning document id.
func UserFolder(root string, id primitive.ObjectID) string {
	return path.Join(root, "users", id.Hex())
}

func OfferFolder(root string, id primitive.ObjectID) string {
	return path.Join(root, "offers", id.Hex())
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

func (s *CloudinaryService) Upload(ctx context.Context, file io.Reader, folder string) (*models.Asset, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	// API-level failures come back in the result, not as err.
	if result.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %s", result.Error.Message)
	}

	return &models.Asset{
		PublicID:         result.PublicID,
		Version:          result.Version,
		VersionID:        result.VersionID,
		Signature:        result.Signature,
		Width:            result.Width,
		Height:           result.Height,
		Format:           result.Format,
		ResourceType:     result.ResourceType,
		CreatedAt:        result.CreatedAt,
		Bytes:            result.Bytes,
		Type:             result.Type,
		Etag:             result.Etag,
		URL:              result.URL,
		SecureURL:        result.SecureURL,
		Folder:           folder,
		OriginalFilename: result.OriginalFilename,
	}, nil
}
