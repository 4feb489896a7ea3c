package firebase

import "mime/multipart"

// StorageClient abstracts the binary storage backend so handlers can be
// tested without a real bucket.
type StorageClient interface {
	UploadProductImage(file multipart.File, filename, contentType string) (string, error)
	UploadBannerImage(file multipart.File, filename, contentType string) (string, error)
	UploadFeedbackImage(file multipart.File, filename, contentType string) (string, error)
	DeleteFile(objectPath string) error
	DownloadAndUploadImage(imageURL string, productID string) (string, error)
}

// FirebaseStorageClient is the production implementation backed by Firebase
// Cloud Storage.
type FirebaseStorageClient struct{}

func NewStorageClient() *FirebaseStorageClient {
	return &FirebaseStorageClient{}
}

func (c *FirebaseStorageClient) UploadProductImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadProductImage(file, filename, contentType)
}

func (c *FirebaseStorageClient) UploadBannerImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadBannerImage(file, filename, contentType)
}

func (c *FirebaseStorageClient) UploadFeedbackImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadFeedbackImage(file, filename, contentType)
}

func (c *FirebaseStorageClient) DeleteFile(objectPath string) error {
	return DeleteFile(objectPath)
}

func (c *FirebaseStorageClient) DownloadAndUploadImage(imageURL string, productID string) (string, error) {
	return DownloadAndUploadImage(imageURL, productID)
}
