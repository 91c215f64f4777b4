// traffic-manager-system/services/auth_service_client.go
package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrEmailAlreadyRegistered is returned when the auth service rejects a
// signup because the address is taken. Terminal for the invitation flow.
var ErrEmailAlreadyRegistered = errors.New("email already registered")

type AuthServiceClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

type SignUpResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func NewAuthServiceClient(baseURL, token string) *AuthServiceClient {
	return &AuthServiceClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignUp creates an account on the auth service. The invitation token and
// workspace ride along as signup metadata so the auth side can audit where
// the account came from.
func (c *AuthServiceClient) SignUp(email, password, invitationToken, workspaceID string) (*SignUpResponse, error) {
	url := fmt.Sprintf("%s/auth/signup", c.BaseURL)

	reqBody := map[string]interface{}{
		"email":    email,
		"password": password,
		"metadata": map[string]string{
			"invitation_token": invitationToken,
			"workspace_id":     workspaceID,
		},
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusConflict {
		return nil, ErrEmailAlreadyRegistered
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("AuthService /signup returned %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("account creation failed: %d", resp.StatusCode)
	}

	var out SignUpResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
