package commandcenter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/seezee/launcherhub/internal/models"
)

// Vercel lists projects through the Vercel REST API.
type Vercel struct {
	BaseURL string
	Client  *http.Client
}

// NewVercel creates a Vercel proxy. A nil client uses a 15 second timeout.
func NewVercel(client *http.Client) *Vercel {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Vercel{BaseURL: VercelAPI, Client: client}
}

// Project is the normalised summary the dashboard renders.
type Project struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Framework        *string         `json:"framework"`
	GitURL           *string         `json:"gitUrl"`
	URL              *string         `json:"url"`
	LatestDeployment json.RawMessage `json:"latestDeployment"`
	UpdatedAt        json.RawMessage `json:"updatedAt"`
	CreatedAt        json.RawMessage `json:"createdAt"`
	NodeVersion      *string         `json:"nodeVersion"`
}

type vercelProject struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Framework *string `json:"framework"`
	Link      *struct {
		Repo *string `json:"repo"`
	} `json:"link"`
	LatestDeployments []json.RawMessage `json:"latestDeployments"`
	UpdatedAt         json.RawMessage   `json:"updatedAt"`
	CreatedAt         json.RawMessage   `json:"createdAt"`
	NodeVersion       *string           `json:"nodeVersion"`
}

var jsonNull = json.RawMessage("null")

// Projects returns up to 50 projects visible to token, scoped to teamID when set.
func (v *Vercel) Projects(ctx context.Context, token, teamID string) ([]Project, *models.AppError) {
	if token == "" {
		return nil, models.ErrBadRequest("Vercel token required")
	}

	q := url.Values{"limit": {"50"}}
	if teamID != "" {
		q.Set("teamId", teamID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.BaseURL+"/v9/projects?"+q.Encode(), nil)
	if err != nil {
		return nil, models.ErrInternal("Failed to fetch Vercel projects")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var body struct {
		Projects []vercelProject `json:"projects"`
	}
	if appErr := fetch(v.Client, req, "Vercel", &body); appErr != nil {
		if appErr.Status == http.StatusInternalServerError {
			appErr.Message = "Failed to fetch Vercel projects"
		}
		return nil, appErr
	}

	out := make([]Project, 0, len(body.Projects))
	for _, p := range body.Projects {
		out = append(out, normalise(p))
	}
	return out, nil
}

func normalise(p vercelProject) Project {
	proj := Project{
		ID:               p.ID,
		Name:             p.Name,
		Framework:        nonEmpty(p.Framework),
		NodeVersion:      nonEmpty(p.NodeVersion),
		LatestDeployment: jsonNull,
		UpdatedAt:        orNull(p.UpdatedAt),
		CreatedAt:        orNull(p.CreatedAt),
	}
	if p.Link != nil {
		proj.GitURL = nonEmpty(p.Link.Repo)
	}
	if p.Name != "" {
		u := "https://" + p.Name + ".vercel.app"
		proj.URL = &u
	}
	if len(p.LatestDeployments) > 0 {
		proj.LatestDeployment = orNull(p.LatestDeployments[0])
	}
	return proj
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func orNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return jsonNull
	}
	return raw
}
