package usecase

import (
	"net/url"
	"strings"

	"marketplace/pkg/utils"

	"github.com/google/uuid"
)

// FxAService starts Firefox Accounts OAuth logins.
type FxAService interface {
	// AuthInfo returns a fresh state and the authorization URL carrying it.
	AuthInfo() (state, authURL string)
}

type fxaService struct {
	config utils.FxAConfig
}

func NewFxAService(config utils.FxAConfig) FxAService {
	return &fxaService{config: config}
}

func (s *fxaService) AuthInfo() (string, string) {
	state := strings.ReplaceAll(uuid.NewString(), "-", "")

	query := url.Values{}
	query.Set("client_id", s.config.ClientID)
	query.Set("scope", "profile")
	query.Set("state", state)

	return state, strings.TrimRight(s.config.OAuthHost, "/") + "/authorization?" + query.Encode()
}
