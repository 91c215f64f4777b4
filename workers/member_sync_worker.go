// workers/member_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"gorm.io/gorm"
)

// ProfileChange matches the JSON response from the auth service's public
// profile feed.
type ProfileChange struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}

type getProfileChangesResponse struct {
	Profiles []ProfileChange `json:"profiles"`
}

// MemberSyncWorker keeps workspace_members.email in step with the auth
// service. Emails are denormalized onto member rows for the roster UI; when
// a user changes their address on the auth side this worker propagates it.
type MemberSyncWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

func NewMemberSyncWorker(db *gorm.DB, authServiceURL, serviceToken string) *MemberSyncWorker {
	return &MemberSyncWorker{
		db:           db,
		interval:     5 * time.Minute,
		baseURL:      authServiceURL,
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *MemberSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Member Sync Worker (auth-service → workspace_members)…")
	go w.run(ctx)
}

func (w *MemberSyncWorker) run(ctx context.Context) {
	lastSync := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Member Sync Worker stopped")
			return
		case <-ticker.C:
			tickTime := time.Now().UTC()
			if err := w.syncBatch(ctx, lastSync); err != nil {
				log.Printf("[MEMBER_SYNC] ❌ Sync batch failed: %v", err)
				// Keep the window; retry the same range next tick.
				continue
			}
			lastSync = tickTime
		}
	}
}

func (w *MemberSyncWorker) syncBatch(ctx context.Context, since time.Time) error {
	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid auth service URL '%s': %w", w.baseURL, err)
	}

	endpointURL := base.JoinPath("/api/v1/public/profiles")
	q := endpointURL.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	endpointURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", endpointURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request to auth service failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("auth service non-200 response: %d — %s", resp.StatusCode, string(body))
	}

	var response getProfileChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode auth service response: %w", err)
	}

	if len(response.Profiles) == 0 {
		return nil
	}

	var updated int
	for _, p := range response.Profiles {
		result := w.db.Table("workspace_members").
			Where("user_id = ?", p.UserID).
			Update("email", p.Email)
		if result.Error != nil {
			log.Printf("[MEMBER_SYNC] ⚠️ Failed to update member email for user %s: %v", p.UserID, result.Error)
			continue
		}
		updated += int(result.RowsAffected)
	}

	log.Printf("[MEMBER_SYNC] ✅ Processed %d profile change(s), %d member row(s) updated", len(response.Profiles), updated)
	return nil
}
