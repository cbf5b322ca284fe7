package usecase

import (
	"context"
	"io"
)

type AuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
}

// FileUploader is the object-storage collaborator; the core only keeps the
// returned URL.
type FileUploader interface {
	UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (string, error)
}
