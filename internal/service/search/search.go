package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/pafiast/alumni-network/internal/models"
)

// Hit is the public slice of an account exposed by directory search.
type Hit struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Department         string `json:"department"`
	GraduationYear     int    `json:"graduation_year"`
	ProfilePicture     string `json:"profile_picture"`
}

// Search matches verified alumni by name. Unverified accounts are never
// indexed, but the filter stays in the query as a second fence.
func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []Hit, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":     query,
						"fields":    []string{"name^2", "department"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"is_verified": true},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source Hit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	hits := make([]Hit, len(r.Hits.Hits))
	for i, h := range r.Hits.Hits {
		hits[i] = h.Source
	}
	return r.Hits.Total.Value, hits, nil
}

// IndexUser writes (or rewrites) one account document. Called on admin
// verification and on profile updates of verified accounts.
func IndexUser(ctx context.Context, es *elasticsearch.Client, index string, u *models.User) error {
	doc := map[string]interface{}{
		"id":                  u.ID,
		"name":                u.Name,
		"registration_number": u.RegistrationNumber,
		"department":          u.Department,
		"graduation_year":     u.GraduationYear,
		"profile_picture":     u.ProfilePicture,
		"is_verified":         u.IsVerified,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("search: encode doc: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: strconv.FormatUint(uint64(u.ID), 10),
		Body:       strings.NewReader(string(data)),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, es)
	if err != nil {
		return fmt.Errorf("search: index user: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index user: %s", res.Status())
	}
	return nil
}

// DeleteUser removes an account document after admin rejection.
func DeleteUser(ctx context.Context, es *elasticsearch.Client, index string, id uint) error {
	req := esapi.DeleteRequest{
		Index:      index,
		DocumentID: strconv.FormatUint(uint64(id), 10),
	}
	res, err := req.Do(ctx, es)
	if err != nil {
		return fmt.Errorf("search: delete user: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: delete user: %s", res.Status())
	}
	return nil
}
