package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticIndexer bulk-indexes RFQs and suppliers, using the record id as
// the document id so a re-publish overwrites instead of duplicating.
type ElasticIndexer struct {
	client        *elasticsearch.Client
	rfqIndex      string
	supplierIndex string
	batchSize     int
}

func NewElasticIndexer(client *elasticsearch.Client, rfqIndex, supplierIndex string, batchSize int) *ElasticIndexer {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &ElasticIndexer{
		client:        client,
		rfqIndex:      rfqIndex,
		supplierIndex: supplierIndex,
		batchSize:     batchSize,
	}
}

func (e *ElasticIndexer) Name() string { return "elasticsearch" }

type bulkDoc struct {
	id  string
	doc interface{}
}

func (e *ElasticIndexer) Publish(ctx context.Context, snap Snapshot) error {
	rfqs := make([]bulkDoc, len(snap.RFQs))
	for i, r := range snap.RFQs {
		rfqs[i] = bulkDoc{id: r.ID, doc: r}
	}
	if err := e.index(ctx, e.rfqIndex, rfqs); err != nil {
		return err
	}

	suppliers := make([]bulkDoc, len(snap.Suppliers))
	for i, s := range snap.Suppliers {
		suppliers[i] = bulkDoc{id: s.CompanyID, doc: s}
	}
	return e.index(ctx, e.supplierIndex, suppliers)
}

func (e *ElasticIndexer) index(ctx context.Context, index string, docs []bulkDoc) error {
	for start := 0; start < len(docs); start += e.batchSize {
		end := min(start+e.batchSize, len(docs))
		body, err := bulkBody(index, docs[start:end])
		if err != nil {
			return err
		}
		if err := e.send(ctx, body); err != nil {
			return fmt.Errorf("bulk index %s [%d:%d]: %w", index, start, end, err)
		}
	}
	return nil
}

func bulkBody(index string, docs []bulkDoc) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, d := range docs {
		meta := map[string]map[string]string{"index": {"_index": index, "_id": d.id}}
		if err := enc.Encode(meta); err != nil {
			return nil, err
		}
		if err := enc.Encode(d.doc); err != nil {
			return nil, fmt.Errorf("encode %s: %w", d.id, err)
		}
	}
	return &buf, nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

func (e *ElasticIndexer) send(ctx context.Context, body io.Reader) error {
	res, err := e.client.Bulk(body, e.client.Bulk.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk request failed: %s", res.Status())
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if !parsed.Errors {
		return nil
	}

	failed := 0
	first := ""
	for _, item := range parsed.Items {
		for _, result := range item {
			if result.Error == nil {
				continue
			}
			failed++
			if first == "" {
				first = fmt.Sprintf("%s: %s", result.ID, result.Error.Reason)
			}
		}
	}
	return fmt.Errorf("%d documents rejected, first: %s", failed, first)
}
