package sitedata

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"voidbot/internal/records"
)

// FirestoreSource reads collections from the website's Firestore project.
type FirestoreSource struct {
	client *firestore.Client
}

// NewFirestoreSource connects to the given project. credentialsFile may be
// empty, in which case application default credentials are used (the website
// project allows public reads).
func NewFirestoreSource(ctx context.Context, projectID, credentialsFile string) (*FirestoreSource, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firebase project id is not configured")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &FirestoreSource{client: client}, nil
}

// FetchCollection returns every document in the named collection. A missing
// collection yields an empty slice.
func (s *FirestoreSource) FetchCollection(ctx context.Context, name string) ([]records.Record, error) {
	return s.drain(ctx, name, s.client.Collection(name).Documents(ctx))
}

// FetchRecent returns up to limit documents ordered by orderField descending.
func (s *FirestoreSource) FetchRecent(ctx context.Context, name, orderField string, limit int) ([]records.Record, error) {
	q := s.client.Collection(name).OrderBy(orderField, firestore.Desc).Limit(limit)
	out, err := s.drain(ctx, name, q.Documents(ctx))
	if err != nil {
		// Ordering by a field no document has fails in some rule setups;
		// fall back to an unordered capped read rather than an empty page.
		return s.drain(ctx, name, s.client.Collection(name).Limit(limit).Documents(ctx))
	}
	return out, nil
}

func (s *FirestoreSource) drain(ctx context.Context, name string, it *firestore.DocumentIterator) ([]records.Record, error) {
	defer it.Stop()

	var out []records.Record
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, nil
			}
			return nil, fmt.Errorf("reading collection %s: %w", name, err)
		}
		rec := records.Record(doc.Data())
		if rec == nil {
			rec = records.Record{}
		}
		rec["id"] = doc.Ref.ID
		out = append(out, rec)
	}
	return out, nil
}

func (s *FirestoreSource) Close() error {
	return s.client.Close()
}
