package resolvers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	gqlmodels "brickstock.GO/graphql/models"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns singleton SearchService.
func GetSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService()
	})
	return searchServiceInstance
}

type SearchService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchService() *SearchService {
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		host = "http://localhost:9200"
	}
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "brickstock_catalog_part"
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return &SearchService{index: index}
	}

	return &SearchService{
		client: client,
		index:  index,
	}
}

// PartsArgs matches the parts query arguments (defaults in schema: pageSize=20, currentPage=1).
type PartsArgs struct {
	Query       string
	PageSize    int32
	CurrentPage int32
}

// Parts (resolver) delegates to SearchService.
func (r *QueryResolver) Parts(ctx context.Context, args PartsArgs) (*gqlmodels.PartSearchResult, error) {
	ps, cp := int(args.PageSize), int(args.CurrentPage)
	return r.searchService().Search(ctx, args.Query, ps, cp)
}

// Search queries the part index: documents carry part_id, shape_key, name,
// image_url, is_printed, is_minifig_part (see cmd search:index).
func (s *SearchService) Search(ctx context.Context, query string, pageSize, currentPage int) (*gqlmodels.PartSearchResult, error) {
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}

	ps := pageSize
	if ps <= 0 {
		ps = 20
	}
	cp := currentPage
	if cp <= 0 {
		cp = 1
	}
	from := (cp - 1) * ps

	body := map[string]interface{}{
		"from": from,
		"size": ps,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "shape_key^2"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	parts := make([]*gqlmodels.Part, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		parts = append(parts, docToPart(hit.Source))
	}

	total := esResp.Hits.Total.Value
	totalPages := (total + ps - 1) / ps
	if totalPages < 1 {
		totalPages = 1
	}
	return &gqlmodels.PartSearchResult{
		Items:      parts,
		TotalCount: int32(total),
		PageInfo: &gqlmodels.PageInfo{
			PageSize:    int32(ps),
			CurrentPage: int32(cp),
			TotalPages:  int32(totalPages),
		},
	}, nil
}

// IndexPart writes one part document into the search index (id = part id).
func (s *SearchService) IndexPart(ctx context.Context, id string, doc map[string]interface{}) error {
	if s.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(id),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}
