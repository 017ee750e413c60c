// Package gbp fetches reviews from the Google Business Profile API.
package gbp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/shutterline/schemapipe/internal/review"
)

const defaultBaseURL = "https://mybusiness.googleapis.com/v4"

// Credentials holds the OAuth2 client credentials and refresh token for
// the business account.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Client fetches reviews for one business location, handling token
// refresh and pagination.
type Client struct {
	BaseURL    string
	Location   string // accounts/{account}/locations/{location}
	httpClient *http.Client
}

// NewClient creates a client whose HTTP transport refreshes the access
// token from the stored refresh token as needed.
func NewClient(ctx context.Context, location string, creds Credentials) *Client {
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"https://www.googleapis.com/auth/business.manage"},
	}
	token := &oauth2.Token{RefreshToken: creds.RefreshToken}

	httpClient := conf.Client(ctx, token)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		BaseURL:    defaultBaseURL,
		Location:   location,
		httpClient: httpClient,
	}
}

// apiReview is the wire shape of one review in the API response.
type apiReview struct {
	Reviewer struct {
		DisplayName string `json:"displayName"`
	} `json:"reviewer"`
	StarRating string `json:"starRating"` // FIVE, FOUR, ...
	Comment    string `json:"comment"`
	CreateTime string `json:"createTime"` // RFC3339
}

type reviewsResponse struct {
	Reviews       []apiReview `json:"reviews"`
	NextPageToken string      `json:"nextPageToken"`
}

// FetchReviews pages through the location's reviews and maps them to the
// domain type. Ratings arrive as rating words and normalize through the
// same path as file exports.
func (c *Client) FetchReviews(ctx context.Context) ([]review.Review, error) {
	var out []review.Review

	pageToken := ""
	for {
		page, err := c.fetchPage(ctx, pageToken)
		if err != nil {
			return nil, err
		}

		for _, raw := range page.Reviews {
			rating, _ := review.NormalizeRating(raw.StarRating)
			out = append(out, review.Review{
				Source:    review.SourceGoogle,
				Reviewer:  raw.Reviewer.DisplayName,
				Body:      raw.Comment,
				RawRating: raw.StarRating,
				Rating:    rating,
				RawDate:   raw.CreateTime,
				Date:      review.ParseDate(raw.CreateTime),
			})
		}

		if page.NextPageToken == "" {
			return out, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) fetchPage(ctx context.Context, pageToken string) (*reviewsResponse, error) {
	reviewsURL := fmt.Sprintf("%s/%s/reviews", c.BaseURL, c.Location)

	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(50))
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reviewsURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create reviews request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reviews API returned status %d: %s", resp.StatusCode, string(body))
	}

	var page reviewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode reviews response: %w", err)
	}

	return &page, nil
}
