package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RESTVectorIndex talks to a Pinecone-style vector index over its REST
// API.
type RESTVectorIndex struct {
	indexURL string
	apiKey   string
	client   *http.Client
}

func NewRESTVectorIndex(indexURL, apiKey string) *RESTVectorIndex {
	return &RESTVectorIndex{
		indexURL: strings.TrimRight(indexURL, "/"),
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type vectorRecord struct {
	ID       string         `json:"id"`
	Values   []float64      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors []vectorRecord `json:"vectors"`
}

type queryRequest struct {
	Vector          []float64 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata map[string]any `json:"metadata,omitempty"`
	} `json:"matches"`
}

func (v *RESTVectorIndex) Upsert(ctx context.Context, id string, vector []float64, metadata map[string]any) error {
	payload, err := json.Marshal(upsertRequest{
		Vectors: []vectorRecord{{ID: id, Values: vector, Metadata: metadata}},
	})
	if err != nil {
		return err
	}
	_, err = v.post(ctx, "/vectors/upsert", payload)
	return err
}

func (v *RESTVectorIndex) Query(ctx context.Context, vector []float64, topK int) ([]Match, error) {
	payload, err := json.Marshal(queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	body, err := v.post(ctx, "/query", payload)
	if err != nil {
		return nil, err
	}

	var parsed queryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		matches = append(matches, Match{ID: m.ID, Score: m.Score, Metadata: m.Metadata})
	}
	return matches, nil
}

func (v *RESTVectorIndex) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	if v.indexURL == "" {
		return nil, errors.New("vector index url not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.indexURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vector index returned %d: %s", resp.StatusCode, truncate(body, 256))
	}
	return body, nil
}
