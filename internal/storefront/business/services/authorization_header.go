package services

import (
	"net/http"

	"storefront_api/internal/storefront/business/models"
)

type AuthEngine interface {
	GetApiKey() string
	SetApiKey(request *http.Request)
}

type BearerAuth struct {
	apiKey string
}

func (b *BearerAuth) GetApiKey() string {
	return b.apiKey
}

func (b *BearerAuth) SetApiKey(request *http.Request) {
	request.Header.Set("Authorization", "Bearer "+b.apiKey)
}

func NewBearerAuth(apiKey string) *BearerAuth {
	if apiKey == "" {
		return nil
	}
	return &BearerAuth{apiKey: apiKey}
}

// NewSessionAuth builds the bearer engine from an explicit session value.
// Returns nil for an unauthenticated session; clients treat a nil engine
// as "send no Authorization header".
func NewSessionAuth(session models.Session) *BearerAuth {
	return NewBearerAuth(session.Token)
}
