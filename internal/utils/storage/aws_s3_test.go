package storage

import (
	"context"
	"errors"
	"testing"

	"food-donation-tracker/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAwsS3_DisabledWithoutBucket(t *testing.T) {
	utils.ResetConfig()
	s := NewAwsS3()

	_, err := s.UploadFile(context.Background(), "x", nil, "food-items", AllowImage...)
	assert.True(t, errors.Is(err, ErrStorageDisabled))
	assert.True(t, errors.Is(s.DeleteFile(context.Background(), "k"), ErrStorageDisabled))
	assert.Empty(t, s.GetObjectKeyFromLink("https://anything"))
}

func TestPublicLinks(t *testing.T) {
	s := &awsS3{bucket: "foodshare", region: "ap-southeast-1"}

	link := s.GetPublicLinkKey("food-items/abc.png")
	assert.Equal(t, "https://foodshare.s3.ap-southeast-1.amazonaws.com/food-items/abc.png", link)
	assert.Equal(t, "food-items/abc.png", s.GetObjectKeyFromLink(link))
	assert.Empty(t, s.GetObjectKeyFromLink("https://elsewhere.example.com/food-items/abc.png"))
}

func TestCheckExtension(t *testing.T) {
	ext, err := checkExtension("Photo.JPG", AllowImage)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	_, err = checkExtension("notes.pdf", AllowImage)
	assert.True(t, errors.Is(err, ErrFileTypeNotAllowed))

	ext, err = checkExtension("anything.bin", nil)
	require.NoError(t, err)
	assert.Equal(t, ".bin", ext)
}
